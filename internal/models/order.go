package models

// OrderRecord mirrors the wire shape of an order.
type OrderRecord struct {
	ID       int64  `json:"id"`
	GoodsID  int64  `json:"goods_id"`
	GoodName string `json:"good_name"`
	Num      int    `json:"num"`
	Image    string `json:"image"`
	Status   string `json:"status"`
}

// Order is read-only from the client's perspective except for a single
// status-transition call.
type Order struct {
	ID       int64
	GoodID   int64
	GoodName string
	Num      int
	Image    string
	Status   string
}

func OrderFromRecord(rec OrderRecord, baseURL string) Order {
	images := ResolveImageURLs(compact(rec.Image), baseURL)
	return Order{
		ID:       rec.ID,
		GoodID:   rec.GoodsID,
		GoodName: rec.GoodName,
		Num:      rec.Num,
		Image:    images[0],
		Status:   rec.Status,
	}
}

func compact(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

// Label is a goods category users can subscribe to for new-arrival mails.
type Label struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
