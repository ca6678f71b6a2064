package engine

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// noCopy makes go vet's copylocks check report value copies of objects.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Object owns exactly one native handle. The handle is acquired when the
// object is created and released by the first Delete; later calls do
// nothing. After Move the object holds NullHandle.
type Object struct {
	_ noCopy

	api     API
	handle  Handle
	kind    string
	release func(API, Handle)
}

// create acquires the handle. On failure o stays null and nothing is released.
func (o *Object) create(api API, kind string, acquire func(API) Handle, release func(API, Handle)) error {
	h := acquire(api)
	if h == NullHandle {
		return errors.Wrap(ErrAllocation, kind)
	}

	log.WithFields(log.Fields{"kind": kind, "handle": h}).Debug("acquired")

	o.api = api
	o.handle = h
	o.kind = kind
	o.release = release
	return nil
}

// Handle returns the raw handle, NullHandle after Delete or Move.
func (o *Object) Handle() Handle {
	return o.handle
}

// API returns the api the handle belongs to.
func (o *Object) API() API {
	return o.api
}

// Delete releases the handle once.
func (o *Object) Delete() {
	if o.handle == NullHandle {
		return
	}

	log.WithFields(log.Fields{"kind": o.kind, "handle": o.handle}).Debug("released")

	o.release(o.api, o.handle)
	o.handle = NullHandle
}

// moveTo transfers the handle to dst, leaving o null.
func (o *Object) moveTo(dst *Object) {
	dst.api = o.api
	dst.handle = o.handle
	dst.kind = o.kind
	dst.release = o.release
	o.handle = NullHandle
}
