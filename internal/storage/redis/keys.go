package redis

import "github.com/cinelog/cinelog/internal/model"

// Key layout:
//   <prefix>:account:<id>          JSON-encoded account
//   <prefix>:account_username:<u>  account ID for a username
//   <prefix>:accounts              set of all account IDs
//   <prefix>:review:<id>           JSON-encoded review
//   <prefix>:reviews               set of all review IDs

func (s *Storage) accountKey(id model.AccountID) string {
	return s.cfg.KeyPrefix + ":account:" + string(id)
}

func (s *Storage) usernameIndexKey(username string) string {
	return s.cfg.KeyPrefix + ":account_username:" + username
}

func (s *Storage) accountSetKey() string {
	return s.cfg.KeyPrefix + ":accounts"
}

func (s *Storage) reviewKey(id model.ReviewID) string {
	return s.cfg.KeyPrefix + ":review:" + string(id)
}

func (s *Storage) reviewSetKey() string {
	return s.cfg.KeyPrefix + ":reviews"
}
