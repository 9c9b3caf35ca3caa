// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model_test

import (
	"openrdl.org/report/model"
)

// recorder implements all four listener interfaces and records every
// notification it receives.
type recorder struct {
	attrs    []*model.AttributeEvent
	contents []*model.ContentEvent
	disposed int
	checks   []*model.ValidationEvent
}

func (r *recorder) AttributeChanged(e *model.AttributeEvent) { r.attrs = append(r.attrs, e) }

func (r *recorder) ContentChanged(e *model.ContentEvent) { r.contents = append(r.contents, e) }

func (r *recorder) DocumentDisposed(e *model.DisposeEvent) { r.disposed++ }

func (r *recorder) ValidationReported(e *model.ValidationEvent) { r.checks = append(r.checks, e) }

// listen registers the recorder for all notification kinds.
func (r *recorder) listen(d *model.Document) {
	d.AddAttributeListener(r)
	d.AddContentListener(r)
	d.AddDisposeListener(r)
	d.AddValidationListener(r)
}

// pngData is a minimal PNG signature, enough for format sniffing.
var pngData = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// libWithConfigVars returns a library defining the given config
// variables, in order.
func libWithConfigVars(fileName string, vars ...model.ConfigVar) *model.Document {
	lib := model.NewLibrary(fileName)
	for _, v := range vars {
		if err := lib.AddConfigVariable(v); err != nil {
			panic(err)
		}
	}
	return lib
}

// names returns the names of the given elements, in order.
func names(es []*model.Element) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Name()
	}
	return out
}
