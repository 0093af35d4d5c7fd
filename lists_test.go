package mailgun

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLists_ListAndCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/lists", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{
				"total_count": 1,
				"items": [{"address": "devs@example.com", "name": "Developers", "members_count": 12, "access_level": "readonly"}]
			}`))
		case http.MethodPost:
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "news@example.com", r.PostFormValue("address"))
			assert.Equal(t, "Newsletter", r.PostFormValue("name"))
			assert.Equal(t, "members", r.PostFormValue("access_level"))
			w.Write([]byte(`{"list":{"address":"news@example.com","name":"Newsletter","access_level":"members"},"message":"Mailing list has been created"}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	client := testClient(t, srv, nil)

	lists, err := client.Lists().List(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "devs@example.com", lists[0].Address)
	assert.Equal(t, 12, lists[0].MembersCount)

	created, err := client.Lists().Create(context.Background(), CreateListRequest{
		Address:     "news@example.com",
		Name:        "Newsletter",
		AccessLevel: "members",
	})
	require.NoError(t, err)
	assert.Equal(t, "news@example.com", created.Address)
}

func TestList_InfoUpdateDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/lists/devs@example.com", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"list":{"address":"devs@example.com","name":"Developers","description":"internal"}}`))
		case http.MethodPut:
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "Developers v2", r.PostFormValue("name"))
			assert.Empty(t, r.PostFormValue("description"))
			w.Write([]byte(`{"list":{"address":"devs@example.com","name":"Developers v2"}}`))
		case http.MethodDelete:
			w.Write([]byte(`{"message":"Mailing list has been deleted"}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	client := testClient(t, srv, nil)
	handle := client.List("devs@example.com")

	list, err := handle.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Developers", list.Name)

	updated, err := handle.Update(context.Background(), UpdateListRequest{Name: "Developers v2"})
	require.NoError(t, err)
	assert.Equal(t, "Developers v2", updated.Name)

	require.NoError(t, handle.Delete(context.Background()))
}

func TestMembers_ListAndCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/lists/devs@example.com/members", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{
				"total_count": 1,
				"items": [{"address": "alice@example.com", "name": "Alice", "subscribed": true}]
			}`))
		case http.MethodPost:
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "bob@example.com", r.PostFormValue("address"))
			assert.Equal(t, "Bob", r.PostFormValue("name"))
			assert.Equal(t, "yes", r.PostFormValue("upsert"))
			assert.Equal(t, "no", r.PostFormValue("subscribed"))

			var vars map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(r.PostFormValue("vars")), &vars))
			assert.Equal(t, "ops", vars["team"])

			w.Write([]byte(`{"member":{"address":"bob@example.com","name":"Bob","subscribed":false},"message":"Mailing list member has been created"}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	client := testClient(t, srv, nil)
	members := client.List("devs@example.com").Members()

	items, err := members.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Subscribed)

	subscribed := false
	created, err := members.Create(context.Background(), CreateMemberRequest{
		Address:    "bob@example.com",
		Name:       "Bob",
		Vars:       map[string]interface{}{"team": "ops"},
		Subscribed: &subscribed,
		Upsert:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", created.Address)
	assert.False(t, created.Subscribed)
}

func TestMember_InfoUpdateDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/lists/devs@example.com/members/alice@example.com", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"member":{"address":"alice@example.com","name":"Alice","subscribed":true,"vars":{"team":"dev"}}}`))
		case http.MethodPut:
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "no", r.PostFormValue("subscribed"))
			assert.Empty(t, r.PostFormValue("name"))
			w.Write([]byte(`{"member":{"address":"alice@example.com","name":"Alice","subscribed":false}}`))
		case http.MethodDelete:
			w.Write([]byte(`{"message":"Mailing list member has been deleted"}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	client := testClient(t, srv, nil)
	member := client.List("devs@example.com").Member("alice@example.com")

	info, err := member.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alice", info.Name)
	assert.Equal(t, "dev", info.Vars["team"])

	unsubscribed := false
	updated, err := member.Update(context.Background(), UpdateMemberRequest{Subscribed: &unsubscribed})
	require.NoError(t, err)
	assert.False(t, updated.Subscribed)

	require.NoError(t, member.Delete(context.Background()))
}
