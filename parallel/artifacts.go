package parallel

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// artifacts names the temporary per-file outputs of one run. Names carry the
// process id and a random run id, so concurrent runs sharing a temp
// directory never collide.
type artifacts struct {
	dir  string
	kind string
	pid  int
	run  string
}

func newArtifacts(dir string, op Op) artifacts {
	kind := "c"
	if op == OpDecompress {
		kind = "d"
	}
	return artifacts{
		dir:  dir,
		kind: kind,
		pid:  os.Getpid(),
		run:  uuid.NewString()[:8],
	}
}

func (a artifacts) path(i int) string {
	return filepath.Join(a.dir, fmt.Sprintf("huffarc_%s_%d_%s_%d.tmp", a.kind, a.pid, a.run, i))
}

// cleanup removes the first n artifacts. Missing ones are ignored.
func (a artifacts) cleanup(n int) {
	for i := range n {
		os.Remove(a.path(i))
	}
}
