package client

import (
	imap "github.com/halcyonmail/go-imap"
	"github.com/halcyonmail/go-imap/wire"
)

// GetQuota fetches the resource usage and limits of a quota root
// (RFC 2087).
func (s *Session) GetQuota(root string) (*imap.QuotaData, error) {
	if err := checkArg("root", root); err != nil {
		return nil, err
	}
	enc := wire.NewEncoder()
	enc.Atom("GETQUOTA").SP().String(root)
	res, err := s.c.execute(catQuota, enc.CommandText(), nil)
	if err != nil {
		return nil, err
	}
	return single[*imap.QuotaData](res, "QUOTA")
}

// GetQuotaRoot fetches the quota roots of a mailbox together with the
// quota of each root.
func (s *Session) GetQuotaRoot(mailbox string) (*imap.QuotaRootData, []*imap.QuotaData, error) {
	if err := checkArg("mailbox", mailbox); err != nil {
		return nil, nil, err
	}
	enc := wire.NewEncoder()
	enc.Atom("GETQUOTAROOT").SP().Mailbox(mailbox)
	res, err := s.c.execute(catQuotaRoot, enc.CommandText(), nil)
	if err != nil {
		return nil, nil, err
	}

	var roots *imap.QuotaRootData
	var quotas []*imap.QuotaData
	for _, r := range res.data {
		switch d := r.(type) {
		case *imap.QuotaRootData:
			roots = d
		case *imap.QuotaData:
			quotas = append(quotas, d)
		}
	}
	return roots, quotas, nil
}

// SetQuota replaces the resource limits of a quota root and returns the
// resulting quota.
func (s *Session) SetQuota(root string, limits []imap.QuotaResourceLimit) (*imap.QuotaData, error) {
	if err := checkArg("root", root); err != nil {
		return nil, err
	}
	enc := wire.NewEncoder()
	enc.Atom("SETQUOTA").SP().String(root).SP().BeginList()
	for i, l := range limits {
		if i > 0 {
			enc.SP()
		}
		enc.Atom(string(l.Name)).SP().Number(l.Limit)
	}
	enc.EndList()

	res, err := s.c.execute(catQuota, enc.CommandText(), nil)
	if err != nil {
		return nil, err
	}
	for _, r := range res.data {
		if q, ok := r.(*imap.QuotaData); ok {
			return q, nil
		}
	}
	return nil, nil
}
