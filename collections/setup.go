package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the uploads and quotation_rows
// collections exist. Uploads hold one record per imported sheet; rows keep
// the raw string cells of every quotation version so analytics always
// recompute from the original data.
func Setup(app *pocketbase.PocketBase) {
	uploads := ensureCollection(app, "uploads", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "file_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "batch_id", Required: true})
		// JSON-encoded []string of the sheet's column order.
		c.Fields.Add(&core.TextField{Name: "columns_json", Required: true})
		c.Fields.Add(&core.NumberField{Name: "row_count", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "quotation_rows", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "upload",
			Required:      true,
			CollectionId:  uploads.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "row_index", Required: false})
		// JSON-encoded map[string]string of raw cell values by column name.
		c.Fields.Add(&core.TextField{Name: "cells_json", Required: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it
// does, the existing collection is returned. Otherwise a new base collection
// is created, the addFields callback populates its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
