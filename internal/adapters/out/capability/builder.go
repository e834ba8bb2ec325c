package capability

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/link"
	"storefront/internal/core/ports"
)

// Builder implements ports.LinkBuilder: {site}/api/orders/<segment>/<token>/.
type Builder struct {
	signer ports.LinkSigner
	site   string
}

func NewBuilder(signer ports.LinkSigner, siteURL string) (*Builder, error) {
	site := strings.TrimRight(strings.TrimSpace(siteURL), "/")
	if site == "" {
		return nil, errors.New("site url is required to build order links")
	}
	return &Builder{signer: signer, site: site}, nil
}

func (b *Builder) URL(action link.Action, orderID int64) (string, error) {
	token, err := b.signer.Issue(action, orderID)
	if err != nil {
		return "", err
	}
	return b.site + "/api/orders/" + action.PathSegment() + "/" + token + "/", nil
}
