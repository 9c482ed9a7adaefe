package debugs

import "github.com/reusee/taibf/bfvm"

// VMGlobals exposes the state of vm to expressions and the inspector.
func VMGlobals(vm *bfvm.VM, output []byte) map[string]any {
	globals := map[string]any{
		"tape":    vm.Tape[:],
		"pointer": vm.Pointer,
		"pc":      vm.PC,
		"steps":   vm.Steps,
		"done":    vm.Done(),
		"output":  output,
		"program": vm.Program,
		"ops":     vm.Program.Ops,
		"cell": func(i int) int {
			if i < 0 || i >= bfvm.TapeSize {
				return -1
			}
			return int(vm.Tape[i])
		},
	}
	if vm.Profile != nil {
		globals["profile"] = vm.Profile.Top(0)
	}
	return globals
}
