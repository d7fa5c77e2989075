package shmframe

import "os"

// shmDir returns the directory backing named regions. Darwin has no
// /dev/shm; a file-backed mapping in the temporary directory gives the
// same sharing semantics between cooperating processes.
func shmDir() string { return os.TempDir() }
