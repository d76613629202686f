package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pkgEvents "notes-admin-be/pkg/events"
	pktNats "notes-admin-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	tailSubject string
	tailDurable string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect admin events on the NATS stream",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print admin events as they are published",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Nats.URL == "" {
			return errors.New("NATS_URL is not set; events stay in process")
		}

		sub, err := pktNats.NewSubscriber(cfg.Nats.URL)
		if err != nil {
			return err
		}
		defer sub.Close()

		ctx := cmd.Context()
		err = sub.Subscribe(ctx, tailSubject, tailDurable, func(ctx context.Context, event pkgEvents.Event) error {
			payload, err := json.Marshal(event.Payload())
			if err != nil {
				return err
			}
			fmt.Printf("%s %s %s\n",
				event.Timestamp().Format("2006-01-02 15:04:05"),
				color.CyanString(event.EventType()),
				payload,
			)
			return nil
		})
		if err != nil {
			return err
		}

		color.Yellow("Listening on %s, press Ctrl+C to stop", tailSubject)
		<-ctx.Done()
		return nil
	},
}

func init() {
	eventsTailCmd.Flags().StringVar(&tailSubject, "subject", pkgEvents.SubjectPrefix+">", "Subject filter")
	eventsTailCmd.Flags().StringVar(&tailDurable, "durable", "", "Durable consumer name, empty for new events only")

	eventsCmd.AddCommand(eventsTailCmd)
	rootCmd.AddCommand(eventsCmd)
}
