package changelist

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"notes-admin-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const (
	DefaultPerPage = 100
	MaxPerPage     = 500

	// EmptyValue is rendered for a missing relation or a NULL value.
	EmptyValue = "-"
)

type Options struct {
	Location *time.Location // calendar for date filters and rendered times, UTC when nil
	PerPage  int
	Now      func() time.Time
}

type Query struct {
	Search  string
	Filters map[string]string // field name to bucket
	Page    int               // 1-based
	PerPage int
}

type Row struct {
	Pk    string   `json:"pk"`
	Cells []string `json:"cells"`
}

type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type Filter struct {
	Field   string   `json:"field"`
	Choices []Choice `json:"choices"`
}

type Result struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
	Filters []Filter `json:"filters"`
	Search  string   `json:"search"`
	Total   int64    `json:"total"`
	Page    int      `json:"page"`
	PerPage int      `json:"per_page"`
}

type join struct {
	alias  string
	clause string
}

// lookup is a declared field name resolved to an SQL column.
type lookup struct {
	name   string
	column string
	field  *schema.Field
	join   *join
}

func (l lookup) searchExpr() string {
	if l.field.DataType == schema.String {
		return l.column
	}
	return "CAST(" + l.column + " AS TEXT)"
}

type column struct {
	name     string
	field    *schema.Field
	relation *schema.Relationship
}

// ChangeList is built once per registered model and is safe for concurrent use.
type ChangeList struct {
	db        *gorm.DB
	modelType reflect.Type
	schema    *schema.Schema
	pk        *schema.Field
	columns   []column
	preloads  []string
	search    []lookup
	filters   []lookup
	ordering  []string
	opts      Options
}

// New resolves the descriptor against the gorm schema of model. Every name the
// descriptor uses must exist; filters must be date or time fields.
func New(db *gorm.DB, model interface{}, descriptor Registerable, opts Options) (*ChangeList, error) {
	s, err := schema.Parse(model, &sync.Map{}, db.NamingStrategy)
	if err != nil {
		return nil, fmt.Errorf("%w: parse model: %v", ErrInvalidDescriptor, err)
	}

	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.PerPage <= 0 {
		opts.PerPage = DefaultPerPage
	}
	if opts.PerPage > MaxPerPage {
		opts.PerPage = MaxPerPage
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cl := &ChangeList{
		db:        db,
		modelType: reflect.Indirect(reflect.ValueOf(model)).Type(),
		schema:    s,
		pk:        s.PrioritizedPrimaryField,
		opts:      opts,
	}
	if cl.pk == nil {
		if len(s.PrimaryFields) == 0 {
			return nil, fmt.Errorf("%w: %s has no primary key", ErrInvalidDescriptor, s.Name)
		}
		cl.pk = s.PrimaryFields[0]
	}

	for _, name := range descriptor.ListColumns() {
		if f := s.LookUpField(name); f != nil && f.DBName != "" {
			cl.columns = append(cl.columns, column{name: name, field: f})
			continue
		}
		rel, err := cl.relation(name)
		if err != nil {
			return nil, err
		}
		cl.columns = append(cl.columns, column{name: name, relation: rel})
		cl.preloads = append(cl.preloads, rel.Name)
	}

	for _, name := range descriptor.SearchableFields() {
		l, err := cl.resolve(name)
		if err != nil {
			return nil, err
		}
		cl.search = append(cl.search, l)
	}

	for _, name := range descriptor.FilterableFields() {
		l, err := cl.resolve(name)
		if err != nil {
			return nil, err
		}
		if l.field.DataType != schema.Time {
			return nil, fmt.Errorf("%w: filter %q is not a date field", ErrInvalidDescriptor, name)
		}
		cl.filters = append(cl.filters, l)
	}

	var ordering []string
	if o, ok := descriptor.(Orderable); ok {
		ordering = o.Ordering()
	}
	if err := cl.buildOrdering(ordering); err != nil {
		return nil, err
	}

	return cl, nil
}

func (cl *ChangeList) relation(name string) (*schema.Relationship, error) {
	for relName, rel := range cl.schema.Relationships.Relations {
		if !strings.EqualFold(relName, name) && cl.db.NamingStrategy.ColumnName("", relName) != name {
			continue
		}
		if rel.Type != schema.BelongsTo && rel.Type != schema.HasOne {
			return nil, fmt.Errorf("%w: %q is not a to-one relation", ErrInvalidDescriptor, name)
		}
		return rel, nil
	}
	return nil, fmt.Errorf("%w: %s has no field %q", ErrInvalidDescriptor, cl.schema.Name, name)
}

func (cl *ChangeList) joinFor(rel *schema.Relationship) (*join, error) {
	alias := "rel_" + cl.db.NamingStrategy.ColumnName("", rel.Name)
	conds := make([]string, 0, len(rel.References))
	for _, ref := range rel.References {
		if ref.PrimaryKey == nil || ref.ForeignKey == nil {
			return nil, fmt.Errorf("%w: polymorphic relation %q", ErrInvalidDescriptor, rel.Name)
		}
		if ref.OwnPrimaryKey {
			conds = append(conds, fmt.Sprintf("%s.%s = %s.%s", alias, ref.ForeignKey.DBName, cl.schema.Table, ref.PrimaryKey.DBName))
		} else {
			conds = append(conds, fmt.Sprintf("%s.%s = %s.%s", alias, ref.PrimaryKey.DBName, cl.schema.Table, ref.ForeignKey.DBName))
		}
	}
	return &join{
		alias:  alias,
		clause: fmt.Sprintf("LEFT JOIN %s %s ON %s", rel.FieldSchema.Table, alias, strings.Join(conds, " AND ")),
	}, nil
}

// resolve turns "field" or "relation__field" into a column.
func (cl *ChangeList) resolve(name string) (lookup, error) {
	parts := strings.Split(name, "__")
	switch len(parts) {
	case 1:
		f := cl.schema.LookUpField(name)
		if f == nil || f.DBName == "" {
			return lookup{}, fmt.Errorf("%w: %s has no field %q", ErrInvalidDescriptor, cl.schema.Name, name)
		}
		return lookup{name: name, column: cl.schema.Table + "." + f.DBName, field: f}, nil
	case 2:
		rel, err := cl.relation(parts[0])
		if err != nil {
			return lookup{}, err
		}
		f := rel.FieldSchema.LookUpField(parts[1])
		if f == nil || f.DBName == "" {
			return lookup{}, fmt.Errorf("%w: %s has no field %q", ErrInvalidDescriptor, rel.FieldSchema.Name, parts[1])
		}
		j, err := cl.joinFor(rel)
		if err != nil {
			return lookup{}, err
		}
		return lookup{name: name, column: j.alias + "." + f.DBName, field: f, join: j}, nil
	}
	return lookup{}, fmt.Errorf("%w: lookup %q spans more than one relation", ErrInvalidDescriptor, name)
}

func (cl *ChangeList) buildOrdering(ordering []string) error {
	pkOrdered := false
	for _, name := range ordering {
		direction := "ASC"
		if strings.HasPrefix(name, "-") {
			direction = "DESC"
			name = name[1:]
		}
		f := cl.schema.LookUpField(name)
		if f == nil || f.DBName == "" {
			return fmt.Errorf("%w: cannot order by %q", ErrInvalidDescriptor, name)
		}
		if f == cl.pk {
			pkOrdered = true
		}
		cl.ordering = append(cl.ordering, fmt.Sprintf("%s.%s %s", cl.schema.Table, f.DBName, direction))
	}
	// Ties fall back to the primary key so pages never overlap.
	if !pkOrdered {
		cl.ordering = append(cl.ordering, fmt.Sprintf("%s.%s DESC", cl.schema.Table, cl.pk.DBName))
	}
	return nil
}

// Columns returns the rendered column names in order.
func (cl *ChangeList) Columns() []string {
	names := make([]string, len(cl.columns))
	for i, c := range cl.columns {
		names[i] = c.name
	}
	return names
}

func (cl *ChangeList) parseFilters(filters map[string]string) (map[string]DateRange, error) {
	ranges := make(map[string]DateRange)
	for name, bucket := range filters {
		if bucket == BucketAny {
			continue
		}
		if _, ok := cl.filterLookup(name); !ok {
			return nil, fmt.Errorf("%w: %q is not filterable", ErrInvalidFilter, name)
		}
		r, ok := BucketRange(bucket, cl.opts.Now(), cl.opts.Location)
		if !ok {
			return nil, fmt.Errorf("%w: unknown choice %q for %q", ErrInvalidFilter, bucket, name)
		}
		ranges[name] = r
	}
	return ranges, nil
}

func (cl *ChangeList) filterLookup(name string) (lookup, bool) {
	for _, l := range cl.filters {
		if l.name == name {
			return l, true
		}
	}
	return lookup{}, false
}

func (cl *ChangeList) scopes(search string, ranges map[string]DateRange) []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB
	joined := make(map[string]bool)
	addJoin := func(j *join) {
		if j == nil || joined[j.alias] {
			return
		}
		joined[j.alias] = true
		clause := j.clause
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Joins(clause) })
	}

	if search = strings.TrimSpace(search); search != "" && len(cl.search) > 0 {
		columns := make([]string, len(cl.search))
		for i, l := range cl.search {
			addJoin(l.join)
			columns[i] = l.searchExpr()
		}
		scopes = append(scopes, specification.ContainsAny{Columns: columns, Query: search}.Apply)
	}

	for _, l := range cl.filters {
		r, ok := ranges[l.name]
		if !ok {
			continue
		}
		addJoin(l.join)
		column := l.column
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(column+" >= ? AND "+column+" < ?", r.Since, r.Until)
		})
	}

	return scopes
}

func (cl *ChangeList) window(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = cl.opts.PerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

func (cl *ChangeList) newModel() interface{} {
	return reflect.New(cl.modelType).Interface()
}

// List runs one change list request: search, filters, ordering and the page
// window, and renders the page.
func (cl *ChangeList) List(ctx context.Context, q Query) (*Result, error) {
	ranges, err := cl.parseFilters(q.Filters)
	if err != nil {
		return nil, err
	}
	page, perPage := cl.window(q.Page, q.PerPage)
	scopes := cl.scopes(q.Search, ranges)

	var total int64
	if err := cl.db.WithContext(ctx).Model(cl.newModel()).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count %s: %w", cl.schema.Table, err)
	}

	dest := reflect.New(reflect.SliceOf(reflect.PointerTo(cl.modelType)))
	query := cl.db.WithContext(ctx).
		Model(cl.newModel()).
		Scopes(scopes...).
		Select(cl.schema.Table + ".*")
	for _, p := range cl.preloads {
		query = query.Preload(p)
	}
	for _, o := range cl.ordering {
		query = query.Order(o)
	}
	if err := query.Limit(perPage).Offset((page - 1) * perPage).Find(dest.Interface()).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", cl.schema.Table, err)
	}

	return &Result{
		Columns: cl.Columns(),
		Rows:    cl.render(ctx, dest.Elem()),
		Filters: cl.filterChoices(q.Filters),
		Search:  strings.TrimSpace(q.Search),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

func (cl *ChangeList) render(ctx context.Context, rows reflect.Value) []Row {
	out := make([]Row, 0, rows.Len())
	for i := 0; i < rows.Len(); i++ {
		rv := rows.Index(i)
		cells := make([]string, len(cl.columns))
		for j, c := range cl.columns {
			cells[j] = cl.cell(ctx, c, rv)
		}
		pk, _ := cl.pk.ValueOf(ctx, rv)
		out = append(out, Row{Pk: cl.format(pk), Cells: cells})
	}
	return out
}

func (cl *ChangeList) cell(ctx context.Context, c column, rv reflect.Value) string {
	if c.relation != nil {
		v, zero := c.relation.Field.ValueOf(ctx, rv)
		if zero {
			return EmptyValue
		}
		return cl.format(v)
	}
	v, _ := c.field.ValueOf(ctx, rv)
	return cl.format(v)
}

func (cl *ChangeList) format(v interface{}) string {
	if v == nil {
		return EmptyValue
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return EmptyValue
		}
		v = rv.Elem().Interface()
	}

	switch x := v.(type) {
	case time.Time:
		return x.In(cl.opts.Location).Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	case string:
		return x
	}
	return fmt.Sprint(v)
}

func (cl *ChangeList) filterChoices(selected map[string]string) []Filter {
	filters := make([]Filter, 0, len(cl.filters))
	for _, l := range cl.filters {
		current := selected[l.name]
		choices := make([]Choice, len(bucketLabels))
		for i, b := range bucketLabels {
			choices[i] = Choice{Value: b.value, Label: b.label, Selected: b.value == current}
		}
		filters = append(filters, Filter{Field: l.name, Choices: choices})
	}
	return filters
}
