package resolver

import "github.com/MKhiriev/go-supa-client/internal/config"

// URLCandidates are the variables consulted for the project URL, in priority
// order.
var URLCandidates = []string{
	"VITE_SUPABASE_URL",
	"SUPABASE_URL",
	"VITE_SUPABASE_PROJECT_URL",
	"SUPABASE_PROJECT_URL",
}

// KeyCandidates are the variables consulted for the anon key, in priority
// order.
var KeyCandidates = []string{
	"VITE_SUPABASE_ANON_KEY",
	"SUPABASE_ANON_KEY",
	"VITE_SUPABASE_KEY",
	"SUPABASE_KEY",
	"VITE_SUPABASE_ANON",
	"SUPABASE_ANON",
}

// firstNonEmpty returns the value and name of the first candidate set to a
// non-empty string. An empty value counts as unset.
func firstNonEmpty(env config.Environment, candidates []string) (value, name string) {
	for _, candidate := range candidates {
		if v := env.Get(candidate); v != "" {
			return v, candidate
		}
	}
	return "", ""
}
