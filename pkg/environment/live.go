package environment

import (
	"os"
	"os/exec"
	"runtime"
)

// LiveHost builds a Host backed by the real operating system: runtime.GOOS,
// os.Hostname, os.LookupEnv, exec.LookPath, and os.Stat for PathExists. defaults
// backs Expand's fallback lookup once a variable isn't in the host's own
// environment.
func LiveHost(defaults map[string]string) Host {
	hostname, _ := os.Hostname()

	lookup := func(name string) (string, bool) {
		if v, ok := os.LookupEnv(name); ok {
			return v, true
		}
		if v, ok := defaults[name]; ok {
			return v, true
		}
		return "", false
	}

	return Host{
		OS:       runtime.GOOS,
		Hostname: hostname,
		Env:      os.LookupEnv,
		LookPath: func(name string) bool {
			_, err := exec.LookPath(name)
			return err == nil
		},
		PathExists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
		Expand: func(s string) (string, bool) {
			expanded, err := Expand(s, lookup)
			if err != nil {
				return "", false
			}
			return expanded, true
		},
	}
}

// Lookup builds the ${NAME} resolution function condition.Resolve and
// Expand need: host environment first, declared defaults second.
func Lookup(host Host, defaults map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		if v, ok := host.Env(name); ok {
			return v, true
		}
		if v, ok := defaults[name]; ok {
			return v, true
		}
		return "", false
	}
}
