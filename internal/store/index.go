package store

import (
	"fmt"

	"github.com/alexanderramin/shutterflow/internal/domain"
	"github.com/hashicorp/go-memdb"
)

const entityTable = "entities"

// Entity kinds held by the index.
const (
	kindProject  = "project"
	kindBuilding = "building"
	kindZone     = "zone"
	kindShutter  = "shutter"
	kindNote     = "note"
)

// indexEntry maps an id to its entity and its parent's id. Exactly one of
// the entity pointers is set, according to Kind.
type indexEntry struct {
	ID       string
	Kind     string
	ParentID string

	Project  *domain.Project
	Building *domain.Building
	Zone     *domain.FunctionalZone
	Shutter  *domain.Shutter
	Note     *domain.Note
}

var indexSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		entityTable: {
			Name: entityTable,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"parent": {
					Name:         "parent",
					AllowMissing: true,
					Indexer:      &memdb.StringFieldIndex{Field: "ParentID"},
				},
				"kind": {
					Name:    "kind",
					Indexer: &memdb.StringFieldIndex{Field: "Kind"},
				},
			},
		},
	},
}

// entityIndex gives O(1) id lookups over the project tree and notes. The
// tree itself stays the source of truth; the index only points into it.
type entityIndex struct {
	db *memdb.MemDB
}

func newEntityIndex() *entityIndex {
	db, err := memdb.NewMemDB(indexSchema)
	if err != nil {
		panic(fmt.Sprintf("store: invalid index schema: %v", err))
	}
	return &entityIndex{db: db}
}

// rebuild replaces the index contents with the given tree and notes.
func (x *entityIndex) rebuild(projects []*domain.Project, notes []*domain.Note) {
	fresh := newEntityIndex()
	txn := fresh.db.Txn(true)
	for _, p := range projects {
		insertProjectTree(txn, p)
	}
	for _, n := range notes {
		mustInsert(txn, &indexEntry{ID: n.ID, Kind: kindNote, Note: n})
	}
	txn.Commit()
	x.db = fresh.db
}

func (x *entityIndex) addProjectTree(p *domain.Project) {
	txn := x.db.Txn(true)
	insertProjectTree(txn, p)
	txn.Commit()
}

func (x *entityIndex) add(e *indexEntry) {
	txn := x.db.Txn(true)
	mustInsert(txn, e)
	txn.Commit()
}

func (x *entityIndex) lookup(id string) (*indexEntry, bool) {
	txn := x.db.Txn(false)
	raw, err := txn.First(entityTable, "id", id)
	if err != nil || raw == nil {
		return nil, false
	}
	return raw.(*indexEntry), true
}

// lookupKind returns the entry only when it has the requested kind.
func (x *entityIndex) lookupKind(id, kind string) (*indexEntry, bool) {
	e, ok := x.lookup(id)
	if !ok || e.Kind != kind {
		return nil, false
	}
	return e, true
}

// withPrefix returns the ids of the given kind starting with prefix.
func (x *entityIndex) withPrefix(kind, prefix string) []string {
	txn := x.db.Txn(false)
	it, err := txn.Get(entityTable, "id_prefix", prefix)
	if err != nil {
		return nil
	}
	var ids []string
	for raw := it.Next(); raw != nil; raw = it.Next() {
		e := raw.(*indexEntry)
		if e.Kind == kind {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func (x *entityIndex) count(kind string) int {
	txn := x.db.Txn(false)
	it, err := txn.Get(entityTable, "kind", kind)
	if err != nil {
		return 0
	}
	n := 0
	for raw := it.Next(); raw != nil; raw = it.Next() {
		n++
	}
	return n
}

// removeSubtree deletes id and every entry below it.
func (x *entityIndex) removeSubtree(id string) {
	txn := x.db.Txn(true)
	pending := []string{id}
	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		it, err := txn.Get(entityTable, "parent", cur)
		if err == nil {
			for raw := it.Next(); raw != nil; raw = it.Next() {
				pending = append(pending, raw.(*indexEntry).ID)
			}
		}
		if _, err := txn.DeleteAll(entityTable, "id", cur); err != nil {
			txn.Abort()
			panic(fmt.Sprintf("store: index delete %s: %v", cur, err))
		}
	}
	txn.Commit()
}

func insertProjectTree(txn *memdb.Txn, p *domain.Project) {
	mustInsert(txn, &indexEntry{ID: p.ID, Kind: kindProject, Project: p})
	for _, b := range p.Buildings {
		mustInsert(txn, &indexEntry{ID: b.ID, Kind: kindBuilding, ParentID: p.ID, Building: b})
		for _, z := range b.FunctionalZones {
			mustInsert(txn, &indexEntry{ID: z.ID, Kind: kindZone, ParentID: b.ID, Zone: z})
			for _, s := range z.Shutters {
				mustInsert(txn, &indexEntry{ID: s.ID, Kind: kindShutter, ParentID: z.ID, Shutter: s})
			}
		}
	}
}

func mustInsert(txn *memdb.Txn, e *indexEntry) {
	if err := txn.Insert(entityTable, e); err != nil {
		txn.Abort()
		panic(fmt.Sprintf("store: index insert %s %s: %v", e.Kind, e.ID, err))
	}
}
