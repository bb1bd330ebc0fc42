package tempdir

// SetHome overrides home directory lookup for tests.
func (r *Resolver) SetHome(fn func() (string, error)) {
	r.home = fn
}
