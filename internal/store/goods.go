package store

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/jlin2026/campusmarket/internal/api"
	"github.com/jlin2026/campusmarket/internal/models"
)

// resolveImages looks up image URLs for n records concurrently. Each lookup
// is bounded by the per-item image timeout; a timeout, error or empty list
// yields the placeholder, never a listing failure.
func (s *Store) resolveImages(ctx context.Context, n int, id func(int) int64, set func(int, []string)) {
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			ictx, cancel := context.WithTimeout(ctx, s.imageTimeout)
			defer cancel()

			urls, err := s.api.GoodImages(ictx, id(i))
			if err != nil {
				s.log.Warn(ctx, "image lookup failed", "good_id", id(i), "err", err)
				urls = nil
			}
			set(i, models.ResolveImageURLs(urls, s.baseURL))
			return nil
		})
	}
	_ = g.Wait()
}

// FetchItems replaces the goods listing with a fresh fetch. Sold records
// are dropped here, client-side: views only ever see 在售 goods. The result
// is published only if no newer fetch started while this one was in
// flight.
func (s *Store) FetchItems(ctx context.Context) Result {
	s.mu.Lock()
	s.itemsGen++
	gen := s.itemsGen
	s.mu.Unlock()

	recs, err := s.api.RandomGoods(ctx, s.pageSize, false)
	if err != nil {
		return failFrom(err, MsgServerFailed)
	}

	items := make([]models.Good, 0, len(recs))
	for _, rec := range recs {
		g := models.GoodFromRecord(rec)
		if g.Status != models.StatusForSale {
			continue
		}
		items = append(items, g)
	}

	s.resolveImages(ctx, len(items),
		func(i int) int64 { return items[i].ID },
		func(i int, urls []string) { items[i].Images = urls })

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.itemsGen {
		s.log.Debug(ctx, "stale goods listing discarded", "gen", gen)
		return ok()
	}
	s.state.Items = items
	return ok()
}

// FetchTasks replaces the task listing. Only 待接单 tasks are published.
func (s *Store) FetchTasks(ctx context.Context) Result {
	s.mu.Lock()
	s.tasksGen++
	gen := s.tasksGen
	s.mu.Unlock()

	recs, err := s.api.RandomGoods(ctx, s.pageSize, true)
	if err != nil {
		return failFrom(err, MsgServerFailed)
	}

	tasks := make([]models.Task, 0, len(recs))
	for _, rec := range recs {
		t := models.TaskFromRecord(rec)
		if t.Status != models.TaskStatusOpen {
			continue
		}
		tasks = append(tasks, t)
	}

	s.resolveImages(ctx, len(tasks),
		func(i int) int64 { return tasks[i].ID },
		func(i int, urls []string) { tasks[i].Images = urls })

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.tasksGen {
		s.log.Debug(ctx, "stale task listing discarded", "gen", gen)
		return ok()
	}
	s.state.Tasks = tasks
	return ok()
}

// GetItem loads one good with its images into State.ActiveItem. No status
// filter applies here: a detail page may show a sold record.
func (s *Store) GetItem(ctx context.Context, id int64) Result {
	rec, err := s.api.Good(ctx, id)
	if err != nil {
		return failFrom(err, MsgServerFailed)
	}
	g := models.GoodFromRecord(*rec)

	ictx, cancel := context.WithTimeout(ctx, s.imageTimeout)
	defer cancel()
	urls, err := s.api.GoodImages(ictx, id)
	if err != nil {
		s.log.Warn(ctx, "image lookup failed", "good_id", id, "err", err)
		urls = nil
	}
	g.Images = models.ResolveImageURLs(urls, s.baseURL)

	s.mu.Lock()
	s.state.ActiveItem = &g
	s.mu.Unlock()
	return ok()
}

// PostItemInput is the listing form for a good.
type PostItemInput struct {
	Title       string `validate:"required"`
	Price       string `validate:"required"`
	Description string
	Labels      []int64
	Images      []api.FileAttachment
}

// PostItem publishes a good in two phases: create the record, then upload
// any attached images tagged with the server-assigned id. A failed upload
// does not roll anything back — the record exists without images and the
// caller gets a success with a warning. Either way the listing is
// refetched afterwards.
func (s *Store) PostItem(ctx context.Context, input PostItemInput) Result {
	user := s.CurrentUser()
	if user == nil {
		return fail(MsgNotLoggedIn)
	}
	if err := s.validate.Struct(input); err != nil {
		return fail(MsgMissingFields)
	}
	price, err := strconv.ParseFloat(input.Price, 64)
	if err != nil {
		return fail(MsgBadPrice)
	}

	created, err := s.api.CreateGood(ctx, api.CreateGoodRequest{
		Name:        input.Title,
		SellerID:    user.ID,
		Num:         1,
		Value:       price,
		Description: input.Description,
		Labels:      input.Labels,
	})
	if err != nil {
		return failFrom(err, MsgServerFailed)
	}

	warning := ""
	if len(input.Images) > 0 {
		if err := s.api.Upload(ctx, "good", created.ID, input.Images); err != nil {
			s.log.Warn(ctx, "good image upload failed", "good_id", created.ID, "err", err)
			warning = MsgImageUploadFailed
		}
	}

	if res := s.FetchItems(ctx); !res.Success {
		s.log.Warn(ctx, "goods listing refresh failed", "message", res.Message)
	}
	return Result{Success: true, Warning: warning}
}

// PostTaskInput is the publishing form for an errand task.
type PostTaskInput struct {
	Title    string `validate:"required"`
	Bounty   string `validate:"required"`
	Notes    string
	Location string
	Images   []api.FileAttachment
}

// PostTask publishes an errand. Notes and location travel packed into the
// description field; the same two-phase create/upload contract as PostItem
// applies.
func (s *Store) PostTask(ctx context.Context, input PostTaskInput) Result {
	user := s.CurrentUser()
	if user == nil {
		return fail(MsgNotLoggedIn)
	}
	if err := s.validate.Struct(input); err != nil {
		return fail(MsgMissingFields)
	}
	bounty, err := strconv.ParseFloat(input.Bounty, 64)
	if err != nil {
		return fail(MsgBadPrice)
	}

	created, err := s.api.CreateGood(ctx, api.CreateGoodRequest{
		Name:        input.Title,
		SellerID:    user.ID,
		Num:         1,
		Value:       bounty,
		Description: models.PackTaskDescription(input.Notes, input.Location),
		IsTask:      true,
	})
	if err != nil {
		return failFrom(err, MsgServerFailed)
	}

	warning := ""
	if len(input.Images) > 0 {
		if err := s.api.Upload(ctx, "good", created.ID, input.Images); err != nil {
			s.log.Warn(ctx, "task image upload failed", "good_id", created.ID, "err", err)
			warning = MsgImageUploadFailed
		}
	}

	if res := s.FetchTasks(ctx); !res.Success {
		s.log.Warn(ctx, "task listing refresh failed", "message", res.Message)
	}
	return Result{Success: true, Warning: warning}
}

// MarkItemSold flips a good to sold and refreshes the listing, which will
// no longer contain it.
func (s *Store) MarkItemSold(ctx context.Context, id int64) Result {
	if s.CurrentUser() == nil {
		return fail(MsgNotLoggedIn)
	}
	if err := s.api.UpdateGoodStatus(ctx, id, models.RawStatusSold); err != nil {
		return failFrom(err, MsgServerFailed)
	}
	if res := s.FetchItems(ctx); !res.Success {
		s.log.Warn(ctx, "goods listing refresh failed", "message", res.Message)
	}
	return ok()
}

// GrabTask claims an open task. The backend moves it to in_progress, so the
// refreshed open-task listing drops it.
func (s *Store) GrabTask(ctx context.Context, id int64) Result {
	if s.CurrentUser() == nil {
		return fail(MsgNotLoggedIn)
	}
	if err := s.api.UpdateGoodStatus(ctx, id, models.RawStatusInProgress); err != nil {
		return failFrom(err, MsgServerFailed)
	}
	if res := s.FetchTasks(ctx); !res.Success {
		s.log.Warn(ctx, "task listing refresh failed", "message", res.Message)
	}
	return ok()
}
