// Package form owns the create/edit form: its state, validation, and the
// explicit Create or Update intent a submit performs.
//
// Validation runs in a fixed order (name, phone, email, group) and stops at
// the first failing field. The resulting intent is fixed before any request
// is sent, so a form cannot switch between create and update mid-submit.
package form
