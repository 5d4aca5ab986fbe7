package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jlin2026/campusmarket/internal/api"
)

// Profile shows the signed-in user's info, own listings and own errands.
func (a *App) Profile(ctx context.Context) error {
	if !a.visit(ctx, PageProfile) {
		return nil
	}

	u := a.store.CurrentUser()
	printlnFn(fmt.Sprintf("%s (学号 %s)", u.Name, u.StudentID))
	printlnFn(fmt.Sprintf("信用分 %d  余额 ￥%.2f", u.CreditScore, u.Balance))
	if u.Avatar != "" {
		printlnFn("头像:", u.Avatar)
	}

	if res := a.store.LoadMyGoods(ctx); !res.Success {
		report(res)
	}
	if res := a.store.LoadMyTasks(ctx); !res.Success {
		report(res)
	}

	snap := a.store.Snapshot()
	if len(snap.MyGoods) > 0 {
		printlnFn("我的商品:")
		for _, g := range snap.MyGoods {
			printlnFn(fmt.Sprintf("  [%d] %s  ￥%.2f  (%s)", g.ID, g.Title, g.Price, g.Status))
		}
	}
	if len(snap.MyTasks) > 0 {
		printlnFn("我的任务:")
		for _, t := range snap.MyTasks {
			printlnFn(fmt.Sprintf("  [%d] %s  赏金￥%.2f  (%s)", t.ID, t.Title, t.Bounty, t.Status))
		}
	}
	return nil
}

// UploadAvatar reads a local image and makes it the user's avatar.
func (a *App) UploadAvatar(ctx context.Context, path string) error {
	if !a.visit(ctx, PageProfile) {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn("无法读取图片:", path)
		return nil
	}

	res := a.store.UploadAvatar(ctx, api.FileAttachment{Name: filepath.Base(path), Data: data})
	if res.Success {
		printlnFn("头像已更新")
	}
	report(res)
	return nil
}
