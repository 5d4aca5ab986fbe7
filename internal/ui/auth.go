package ui

import (
	"context"
	"fmt"

	"github.com/jlin2026/campusmarket/internal/store"
)

// report prints a command outcome. Warnings accompany successes; a
// message on success is informational.
func report(res store.Result) {
	if res.Message != "" {
		printlnFn(res.Message)
	}
	if res.Warning != "" {
		printlnFn("注意:", res.Warning)
	}
}

func (a *App) Login(ctx context.Context) error {
	studentID, err := GetSimpleText(a.reader, "请输入学号", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	res := a.store.Login(ctx, studentID, string(password))
	if !res.Success {
		report(res)
		return nil
	}

	u := a.store.CurrentUser()
	printlnFn(fmt.Sprintf("登录成功，欢迎 %s!", u.Name))
	a.page = PageMarket
	return a.Market(ctx)
}

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "请输入昵称", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "请输入邮箱", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	res := a.store.Register(ctx, store.RegisterInput{
		Name:     name,
		Email:    email,
		Password: string(password),
	})
	report(res)
	if res.Success {
		a.page = PageConfirm
	}
	return nil
}

func (a *App) Confirm(ctx context.Context) error {
	token, err := GetSimpleText(a.reader, "请输入邮件中的确认码", a.out)
	if err != nil {
		return err
	}

	res := a.store.Confirm(ctx, token)
	report(res)
	if res.Success {
		a.page = PageLogin
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	res := a.store.Logout(ctx)
	if res.Success {
		printlnFn("已退出登录")
		a.page = PageLogin
	} else {
		report(res)
	}
	return nil
}
