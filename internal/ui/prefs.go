package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Preferences shows the label catalog and lets the user pick the ones
// they want recommendations for.
func (a *App) Preferences(ctx context.Context) error {
	if !a.visit(ctx, PagePrefs) {
		return nil
	}

	if res := a.store.FetchLabels(ctx); !res.Success {
		report(res)
		return nil
	}

	labels := a.store.Snapshot().Labels
	if len(labels) == 0 {
		printlnFn("暂无可选标签")
		return nil
	}
	for _, l := range labels {
		printlnFn(fmt.Sprintf("[%d] %s", l.ID, l.Name))
	}

	line, err := GetSimpleText(a.reader, "输入感兴趣的标签编号 (逗号分隔)", a.out)
	if err != nil {
		return err
	}
	if line == "" {
		return nil
	}

	var ids []int64
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			printlnFn("无效的编号:", part)
			return nil
		}
		ids = append(ids, id)
	}

	report(a.store.UpdatePreferences(ctx, ids))
	return nil
}
