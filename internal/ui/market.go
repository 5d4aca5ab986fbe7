package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jlin2026/campusmarket/internal/api"
	"github.com/jlin2026/campusmarket/internal/store"
	"github.com/jlin2026/campusmarket/internal/textgen"
)

// Market renders the second-hand board: everything currently 在售.
func (a *App) Market(ctx context.Context) error {
	if !a.visit(ctx, PageMarket) {
		return nil
	}

	res := a.store.FetchItems(ctx)
	if !res.Success {
		report(res)
		return nil
	}

	items := a.store.Snapshot().Items
	if len(items) == 0 {
		printlnFn("暂时没有在售商品")
		return nil
	}
	for _, g := range items {
		printlnFn(fmt.Sprintf("[%d] %s  ￥%.2f  (%s)", g.ID, g.Title, g.Price, g.Status))
	}
	return nil
}

// OpenItem shows a single listing in detail, sold or not.
func (a *App) OpenItem(ctx context.Context, id int64) error {
	if !a.visit(ctx, PageMarket) {
		return nil
	}

	res := a.store.GetItem(ctx, id)
	if !res.Success {
		report(res)
		return nil
	}

	g := a.store.Snapshot().ActiveItem
	printlnFn(fmt.Sprintf("%s  ￥%.2f  (%s)", g.Title, g.Price, g.Status))
	if g.Description != "" {
		printlnFn(g.Description)
	}
	for _, img := range g.Images {
		printlnFn("图片:", img)
	}
	return nil
}

// PostItem walks the publish flow: title, price, description with an
// optional AI rewrite, then image paths.
func (a *App) PostItem(ctx context.Context) error {
	if !a.visit(ctx, PageMarket) {
		return nil
	}

	title, err := GetSimpleText(a.reader, "商品名称", a.out)
	if err != nil {
		return err
	}
	price, err := GetSimpleText(a.reader, "价格 (元)", a.out)
	if err != nil {
		return err
	}
	desc, err := GetMultiline(a.reader, "商品描述", a.out)
	if err != nil {
		return err
	}
	desc = a.maybePolish(ctx, desc, textgen.KindItem)

	images, err := a.promptImages()
	if err != nil {
		return err
	}

	res := a.store.PostItem(ctx, store.PostItemInput{
		Title:       title,
		Price:       price,
		Description: desc,
		Images:      images,
	})
	if res.Success {
		printlnFn("发布成功!")
	}
	report(res)
	return nil
}

// MarkSold flips one of the caller's listings to 已售.
func (a *App) MarkSold(ctx context.Context, id int64) error {
	if !a.visit(ctx, PageMarket) {
		return nil
	}

	res := a.store.MarkItemSold(ctx, id)
	if res.Success {
		printlnFn("已标记为已售")
	}
	report(res)
	return nil
}

// maybePolish offers the AI rewrite and lets the user accept or keep the
// original draft.
func (a *App) maybePolish(ctx context.Context, draft string, kind textgen.DraftKind) string {
	if draft == "" || !a.polisher.Enabled() {
		return draft
	}

	answer, err := GetSimpleText(a.reader, "是否使用 AI 润色描述? (y/N)", a.out)
	if err != nil || !strings.EqualFold(answer, "y") {
		return draft
	}

	polished := a.polisher.Polish(ctx, draft, kind)
	printlnFn("润色结果:", polished)
	answer, err = GetSimpleText(a.reader, "采用润色后的描述? (Y/n)", a.out)
	if err != nil || strings.EqualFold(answer, "n") {
		return draft
	}
	return polished
}

// promptImages reads a comma-separated list of local file paths and loads
// them. A path that fails to read aborts the prompt so the user can fix it.
func (a *App) promptImages() ([]api.FileAttachment, error) {
	line, err := GetSimpleText(a.reader, "图片路径 (逗号分隔，留空跳过)", a.out)
	if err != nil {
		return nil, err
	}
	if line == "" {
		return nil, nil
	}

	var files []api.FileAttachment
	for _, p := range strings.Split(line, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			printlnFn("无法读取图片:", p)
			return nil, nil
		}
		files = append(files, api.FileAttachment{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}
