/*
	opengl resource wrappers

	Every object owns exactly one native handle, acquired when it is
	created and released by Delete. Binding is process wide: Bind on one
	buffer makes it the implicit target of every following buffer call for
	its target until another buffer is bound or the target is unbound.
	Nothing here locks; all calls belong to the thread owning the context.

	device (one per process)
		platform (event queue)
		window (context, framebuffer size)
		api (function pointers)

	mesh
		vertex array
			attribute 0: position, float x3
		vertex buffer
		element buffer

	program
		vertex shader, fragment shader
		uniforms
*/

package engine
