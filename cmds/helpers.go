package cmds

// Var defines name as a command taking one argument that sets the returned
// value. "name." resets it to zero.
func Var[T any](name string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}))
	Define(name+".", Func(func() {
		var zero T
		value = zero
	}))
	return &value
}

// Switch defines name to set the returned flag and "!name" to clear it.
func Switch(name string) *bool {
	var value bool
	Define(name, Func(func() {
		value = true
	}))
	Define("!"+name, Func(func() {
		value = false
	}))
	return &value
}

func Collect[T any](name string) *[]T {
	var value []T
	Define(name, Func(func(v T) {
		value = append(value, v)
	}))
	return &value
}
