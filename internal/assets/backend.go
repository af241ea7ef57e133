package assets

import "context"

type BackendKind int

const (
	KindLocal BackendKind = iota
	KindRemote
)

func (k BackendKind) String() string {
	if k == KindRemote {
		return "remote"
	}
	return "local"
}

const (
	// ContainerName is the bucket every remote asset lives in.
	ContainerName = "images"
	// ImagesSubpath is the directory under the web root that holds local assets.
	ImagesSubpath = "data/images"
	ContentType   = "image/jpeg"
)

// Backend is implemented by LocalBackend and RemoteBackend. Exactly one is
// active per process.
type Backend interface {
	Save(ctx context.Context, imageID int, data []byte) error
	Remove(ctx context.Context, imageID int) error
	Reference(imageID int) string
	Kind() BackendKind
}
