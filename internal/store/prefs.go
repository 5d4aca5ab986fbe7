package store

import "context"

// FetchLabels loads the label catalog used by the preferences page and the
// posting form.
func (s *Store) FetchLabels(ctx context.Context) Result {
	labels, err := s.api.Labels(ctx)
	if err != nil {
		return failFrom(err, MsgServerFailed)
	}

	s.mu.Lock()
	s.state.Labels = labels
	s.mu.Unlock()
	return ok()
}

// UpdatePreferences replaces the current user's subscribed labels.
func (s *Store) UpdatePreferences(ctx context.Context, labelIDs []int64) Result {
	user := s.CurrentUser()
	if user == nil {
		return fail(MsgNotLoggedIn)
	}

	if err := s.api.UpdatePreferences(ctx, user.ID, labelIDs); err != nil {
		return failFrom(err, MsgServerFailed)
	}
	return okMsg("偏好已更新")
}
