package models

// ViewCount is the number of views an image received in one partition.
type ViewCount struct {
	ImageID  int    `json:"image_id"`
	Caption  string `json:"caption"`
	AssetURI string `json:"uri"`
	Views    int    `json:"views"`
}
