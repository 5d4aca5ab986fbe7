package ui

import (
	"context"
	"fmt"

	"github.com/jlin2026/campusmarket/internal/store"
	"github.com/jlin2026/campusmarket/internal/textgen"
)

// Tasks renders the errand board: everything currently 待接单.
func (a *App) Tasks(ctx context.Context) error {
	if !a.visit(ctx, PageTasks) {
		return nil
	}

	res := a.store.FetchTasks(ctx)
	if !res.Success {
		report(res)
		return nil
	}

	tasks := a.store.Snapshot().Tasks
	if len(tasks) == 0 {
		printlnFn("暂时没有待接单的任务")
		return nil
	}
	for _, t := range tasks {
		printlnFn(fmt.Sprintf("[%d] %s  赏金￥%.2f  %s  (%s)", t.ID, t.Title, t.Bounty, t.Location, t.Status))
		if t.Notes != "" {
			printlnFn("    " + t.Notes)
		}
	}
	return nil
}

// PostTask walks the errand publish flow: title, bounty, notes with an
// optional AI rewrite, route, then image paths.
func (a *App) PostTask(ctx context.Context) error {
	if !a.visit(ctx, PageTasks) {
		return nil
	}

	title, err := GetSimpleText(a.reader, "任务标题", a.out)
	if err != nil {
		return err
	}
	bounty, err := GetSimpleText(a.reader, "赏金 (元)", a.out)
	if err != nil {
		return err
	}
	notes, err := GetMultiline(a.reader, "任务说明", a.out)
	if err != nil {
		return err
	}
	notes = a.maybePolish(ctx, notes, textgen.KindTask)

	location, err := GetSimpleText(a.reader, "路线 (例如: 北门 -> A栋宿舍)", a.out)
	if err != nil {
		return err
	}

	images, err := a.promptImages()
	if err != nil {
		return err
	}

	res := a.store.PostTask(ctx, store.PostTaskInput{
		Title:    title,
		Bounty:   bounty,
		Notes:    notes,
		Location: location,
		Images:   images,
	})
	if res.Success {
		printlnFn("任务已发布!")
	}
	report(res)
	return nil
}

// GrabTask accepts an open errand, moving it to 进行中.
func (a *App) GrabTask(ctx context.Context, id int64) error {
	if !a.visit(ctx, PageTasks) {
		return nil
	}

	res := a.store.GrabTask(ctx, id)
	if res.Success {
		printlnFn("接单成功!")
	}
	report(res)
	return nil
}
