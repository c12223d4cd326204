package domain

// Actor identifies who performed an operation. Handlers build it from the
// request (token claims + client IP); services never reach into ambient
// request state.
type Actor struct {
	ID   int64
	Name string
	IP   string
}

// SystemActor is used by scheduled jobs and maintenance binaries.
func SystemActor() Actor {
	return Actor{ID: 0, Name: "system"}
}

// GuestActor is used on the public confirmation endpoints.
func GuestActor(ip string) Actor {
	return Actor{ID: 0, Name: "guest", IP: ip}
}
