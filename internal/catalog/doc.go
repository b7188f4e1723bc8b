// Package catalog declares how each stored entity type is shown in a grid:
// its column model, row identity and the fields a form may assign. A
// Session binds one entity type's repository to a grid view and a row
// action dispatcher.
package catalog
