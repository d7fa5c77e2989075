package shmframe

// shmDir returns the directory backing named regions. /dev/shm is the
// tmpfs mount shm_open uses, so regions interoperate with C consumers.
func shmDir() string { return "/dev/shm" }
