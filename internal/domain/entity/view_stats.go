package entity

type ViewStats struct {
	Views        int64
	PixelsViewed int64
}
