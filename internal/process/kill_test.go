package process

// Notes:
// - Real termination is exercised by the PDF renderer's Close; unit tests
//   only cover PIDs that cannot hit a live process group.

import "testing"

func TestKillProcessGroup_IgnoresUnusablePIDs(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1, 999999999} {
		KillProcessGroup(pid)
	}
}
