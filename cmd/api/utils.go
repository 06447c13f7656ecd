package main

import (
	"net/http"
	"strconv"

	"github.com/farxc/sil_dashboard/internal/programacao"
	"github.com/farxc/sil_dashboard/internal/programacao/filter"
	"github.com/samber/lo"
)

func selectionFromQuery(r *http.Request) (filter.Selection, error) {
	q := r.URL.Query()
	return filter.ParseSelection(q.Get("region"), q.Get("branch"), q.Get("mode"), q.Get("year"), q.Get("month"))
}

func parseLimit(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	if l, err := strconv.Atoi(raw); err == nil && l > 0 {
		return l
	}
	return fallback
}

// messagesFor keeps the messages of the given widgets, or all of them when
// none are named.
func messagesFor(msgs []programacao.Message, widgets ...string) []string {
	if len(widgets) > 0 {
		msgs = lo.Filter(msgs, func(m programacao.Message, _ int) bool {
			return lo.Contains(widgets, m.Widget)
		})
	}
	if len(msgs) == 0 {
		return nil
	}
	return programacao.WarningTexts(msgs)
}
