package services

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/schooladmin/internal/client/client"
	"github.com/dmitrijs2005/schooladmin/internal/client/models"
)

// fakeClient implements client.Client. Record payloads are stored as JSON so
// decoding behaves like the REST client.
type fakeClient struct {
	CloseErr error
	PingErr  error

	SendOTPErr    error
	VerifyOTPRet  *models.AuthResult
	VerifyOTPErr  error
	LogoutErr     error
	ProfileRet    *models.Profile
	ProfileErr    error
	RecordErr     error
	ListPayload   string
	RecordPayload string

	LastSendMobile   string
	LastVerifyMobile string
	LastVerifyCode   string
	LogoutCalls      int
	LastKind         models.Kind
	LastID           string
	LastIn           any
	Closed           bool
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error {
	f.Closed = true
	return f.CloseErr
}

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

func (f *fakeClient) SendOTP(_ context.Context, mobile string) error {
	f.LastSendMobile = mobile
	return f.SendOTPErr
}

func (f *fakeClient) VerifyOTP(_ context.Context, mobile, code string) (*models.AuthResult, error) {
	f.LastVerifyMobile = mobile
	f.LastVerifyCode = code
	return f.VerifyOTPRet, f.VerifyOTPErr
}

func (f *fakeClient) Logout(context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) Profile(context.Context) (*models.Profile, error) {
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) ListRecords(_ context.Context, kind models.Kind, out any) error {
	f.LastKind = kind
	if f.RecordErr != nil {
		return f.RecordErr
	}
	return json.Unmarshal([]byte(f.ListPayload), out)
}

func (f *fakeClient) GetRecord(_ context.Context, kind models.Kind, id string, out any) error {
	f.LastKind, f.LastID = kind, id
	if f.RecordErr != nil {
		return f.RecordErr
	}
	return json.Unmarshal([]byte(f.RecordPayload), out)
}

func (f *fakeClient) CreateRecord(_ context.Context, kind models.Kind, in, out any) error {
	f.LastKind, f.LastIn = kind, in
	if f.RecordErr != nil {
		return f.RecordErr
	}
	return echoWithID(in, "new-1", out)
}

func (f *fakeClient) UpdateRecord(_ context.Context, kind models.Kind, id string, in, out any) error {
	f.LastKind, f.LastID, f.LastIn = kind, id, in
	if f.RecordErr != nil {
		return f.RecordErr
	}
	return echoWithID(in, id, out)
}

func (f *fakeClient) DeleteRecord(_ context.Context, kind models.Kind, id string) error {
	f.LastKind, f.LastID = kind, id
	return f.RecordErr
}

func echoWithID(in any, id string, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	m["id"] = id
	b, err = json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
