package store

import (
	"context"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

// Directory is a read-only lookup of users and funding sources, kept in the order given.
type Directory struct {
	users   []purchaserequest.UserReference
	sources []purchaserequest.FundingSource
}

func NewDirectory(users []purchaserequest.UserReference, sources []purchaserequest.FundingSource) *Directory {
	return &Directory{
		users:   append([]purchaserequest.UserReference(nil), users...),
		sources: append([]purchaserequest.FundingSource(nil), sources...),
	}
}

func (d *Directory) GetUser(_ context.Context, id string) (*purchaserequest.UserReference, error) {
	for _, u := range d.users {
		if u.ID == id {
			return new(u), nil
		}
	}

	return nil, purchaserequest.ErrNotFound
}

func (d *Directory) ListUsers(_ context.Context) ([]*purchaserequest.UserReference, error) {
	out := make([]*purchaserequest.UserReference, len(d.users))
	for i, u := range d.users {
		out[i] = new(u)
	}

	return out, nil
}

func (d *Directory) GetFundingSource(_ context.Context, id string) (*purchaserequest.FundingSource, error) {
	for _, fs := range d.sources {
		if fs.ID == id {
			return new(fs), nil
		}
	}

	return nil, purchaserequest.ErrNotFound
}

func (d *Directory) ListFundingSources(_ context.Context) ([]*purchaserequest.FundingSource, error) {
	out := make([]*purchaserequest.FundingSource, len(d.sources))
	for i, fs := range d.sources {
		out[i] = new(fs)
	}

	return out, nil
}
