package config

import (
	"log"
	"strings"
)

type Required struct {
	Env string
	Set bool
}

func Missing(reqs ...Required) []string {
	var out []string
	for _, r := range reqs {
		if !r.Set {
			out = append(out, r.Env)
		}
	}
	return out
}

// MustHave exits listing every unset variable at once.
func MustHave(reqs ...Required) {
	if m := Missing(reqs...); len(m) > 0 {
		log.Fatalf("missing required env: %s", strings.Join(m, ", "))
	}
}
