package engine

// VertexAttribute is the shape of one vertex input.
type VertexAttribute struct {
	Type       DataType
	Components int
	Normalized bool
}

// Size returns the byte size of one attribute value.
func (a VertexAttribute) Size() int {
	return a.Type.Size() * a.Components
}

// VertexArray maps the layout of bound buffer data to shader input slots.
type VertexArray struct {
	Object
}

func NewVertexArray(api API) (*VertexArray, error) {
	va := &VertexArray{}
	if err := va.create(api, "vertex array", genVertexArray, deleteVertexArray); err != nil {
		return nil, err
	}
	return va, nil
}

func genVertexArray(api API) Handle       { return api.GenVertexArray() }
func deleteVertexArray(api API, h Handle) { api.DeleteVertexArray(h) }

func (va *VertexArray) Bind() {
	va.api.BindVertexArray(va.handle)
}

func UnbindVertexArray(api API) {
	api.BindVertexArray(NullHandle)
}

// SetAttribute makes slot read attr from the buffer currently bound to
// ArrayBuffer, starting offset bytes into each record with stride bytes
// between records, and enables the slot. va must be bound. The buffer
// binding is captured by the api at call time.
func (va *VertexArray) SetAttribute(slot uint32, attr VertexAttribute, offset, stride int) {
	va.api.VertexAttribPointer(slot, attr, stride, offset)
	va.api.EnableVertexAttribArray(slot)
}

// Move returns a vertex array owning va's handle; va is left null.
func (va *VertexArray) Move() *VertexArray {
	n := &VertexArray{}
	va.moveTo(&n.Object)
	return n
}
