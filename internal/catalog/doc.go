// Package catalog implements the book catalog: the one place that adds, removes, searches, lists and
// summarizes book records.
//
// A [Catalog] is constructed once at startup around a [models.Store] and handed to every presentation
// layer (command line, interactive console, web form). It keeps no copy of the records between calls:
// each operation goes to the store, which scopes its own connection or lock to that call.
//
// Text fields are normalized on the way in ([Catalog.AddBook]) and never on the way out.
package catalog
