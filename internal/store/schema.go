package store

import (
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/triviaz/ent/schema"
)

// Table names.
const (
	questionsTable     = "questions"
	usedQuestionsTable = "used_questions"
	settingsTable      = "settings"
	sessionEventsTable = "session_events"
)

// entities maps each ent schema to the table it is stored in.
var entities = []struct {
	table  string
	schema ent.Interface
}{
	{questionsTable, entschema.Question{}},
	{usedQuestionsTable, entschema.UsedQuestion{}},
	{settingsTable, entschema.Setting{}},
	{sessionEventsTable, entschema.SessionEvent{}},
}

// Tables returns the migration tables described by the ent schemas.
func Tables() ([]*schema.Table, error) {
	tables := make([]*schema.Table, 0, len(entities))
	for _, e := range entities {
		t, err := tableFor(e.table, e.schema)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// tableFor builds a table from a schema's mixin and own fields and
// indexes. Without an "id" field the table gets an auto-increment int key,
// as ent does.
func tableFor(name string, s ent.Interface) (*schema.Table, error) {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	t := &schema.Table{Name: name}
	byField := make(map[string]*schema.Column, len(fields))
	var pk *schema.Column

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("schema %s field %s: %w", name, d.Name, d.Err)
		}
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional || d.Nillable,
			Default:  columnDefault(d.Default),
			Comment:  d.Comment,
		}
		if d.StorageKey != "" {
			col.Name = d.StorageKey
		}
		if d.Name == "id" {
			col.Unique = false
			pk = col
		}
		byField[d.Name] = col
		t.Columns = append(t.Columns, col)
	}

	if pk == nil {
		pk = &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
		t.Columns = append([]*schema.Column{pk}, t.Columns...)
	}
	t.PrimaryKey = []*schema.Column{pk}

	prefix := strings.ToLower(reflect.TypeOf(s).Name())
	for _, idx := range indexes {
		d := idx.Descriptor()
		cols := make([]*schema.Column, 0, len(d.Fields))
		for _, f := range d.Fields {
			col, ok := byField[f]
			if !ok {
				return nil, fmt.Errorf("schema %s index: unknown field %q", name, f)
			}
			cols = append(cols, col)
		}
		idxName := d.StorageKey
		if idxName == "" {
			idxName = prefix + "_" + strings.Join(d.Fields, "_")
		}
		t.Indexes = append(t.Indexes, &schema.Index{
			Name:    idxName,
			Unique:  d.Unique,
			Columns: cols,
		})
	}
	return t, nil
}

// columnDefault keeps literal defaults; generator funcs such as time.Now
// have no column form.
func columnDefault(v any) any {
	switch v.(type) {
	case string, bool, int, int64, float64:
		return v
	}
	return nil
}
