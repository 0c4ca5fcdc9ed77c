/*
Package types defines core data structures used throughout restadmin.

# Overview

The types package provides shared type definitions for:
  - Records exchanged with the REST API
  - Field descriptors that drive table columns and form inputs
  - Form state (closed, creating, editing)
  - Notifications shown by the panel
  - Model definitions served by the CRUD server

# Records

Record:
  - Opaque field name to value mapping
  - Always carries an "id" once persisted
  - Numbers are kept as json.Number so ids round-trip unchanged

# Form State

FormState is a tagged value with three shapes:

	FormClosed()        // no modal
	FormCreating()      // modal open, POST on submit
	FormEditing("42")   // modal open, PUT /api/{model}/42 on submit

It is passed around by value; there is no package-level edit state.
*/
package types
