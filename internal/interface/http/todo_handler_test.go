package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostTodos_CreatesOwnedTodo(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodPost, "/todos", api.seed.UserOneToken, map[string]interface{}{
		"text": "Test todo text",
	})
	assertStatus(t, rr, http.StatusOK)

	body := decodeBody(t, rr)
	require.Equal(t, "Test todo text", body["text"])
	require.Equal(t, false, body["completed"])
	require.Nil(t, body["completedAt"])
	require.Equal(t, api.seed.UserOne.ID.Hex(), body["_creator"])

	id, err := primitive.ObjectIDFromHex(body["_id"].(string))
	require.NoError(t, err)
	require.True(t, api.todos.has(id))
}

func TestPostTodos_EmptyBody(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodPost, "/todos", api.seed.UserOneToken, map[string]interface{}{})
	assertStatus(t, rr, http.StatusBadRequest)
	require.True(t, api.todos.has(api.seed.TodoOne.ID))
	require.True(t, api.todos.has(api.seed.TodoTwo.ID))
}

func TestPostTodos_NoToken(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodPost, "/todos", "", map[string]interface{}{"text": "x"})
	assertStatus(t, rr, http.StatusUnauthorized)
}

func TestGetTodos_ReturnsOnlyOwn(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodGet, "/todos", api.seed.UserOneToken, nil)
	assertStatus(t, rr, http.StatusOK)

	body := decodeBody(t, rr)
	todos := body["todos"].([]interface{})
	require.Len(t, todos, 1)
	first := todos[0].(map[string]interface{})
	require.Equal(t, "First todo", first["text"])
}

func TestGetTodoByID(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodGet, "/todos/"+api.seed.TodoOne.ID.Hex(), api.seed.UserOneToken, nil)
	assertStatus(t, rr, http.StatusOK)
	body := decodeBody(t, rr)
	todo := body["todo"].(map[string]interface{})
	require.Equal(t, "First todo", todo["text"])
}

func TestGetTodoByID_NotOwned(t *testing.T) {
	api := newTestAPI(t)

	// TodoTwo belongs to user two; user one's token must see a plain 404.
	rr := api.do(t, http.MethodGet, "/todos/"+api.seed.TodoTwo.ID.Hex(), api.seed.UserOneToken, nil)
	assertStatus(t, rr, http.StatusNotFound)
}

func TestGetTodoByID_UnknownID(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodGet, "/todos/"+primitive.NewObjectID().Hex(), api.seed.UserOneToken, nil)
	assertStatus(t, rr, http.StatusNotFound)
}

func TestGetTodoByID_MalformedID(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodGet, "/todos/123abc", api.seed.UserOneToken, nil)
	assertStatus(t, rr, http.StatusNotFound)
}

func TestDeleteTodo(t *testing.T) {
	api := newTestAPI(t)
	hexID := api.seed.TodoOne.ID.Hex()

	rr := api.do(t, http.MethodDelete, "/todos/"+hexID, api.seed.UserOneToken, nil)
	assertStatus(t, rr, http.StatusOK)
	body := decodeBody(t, rr)
	todo := body["todo"].(map[string]interface{})
	require.Equal(t, hexID, todo["_id"])
	require.False(t, api.todos.has(api.seed.TodoOne.ID))

	// Deleting again, and fetching, both report not found.
	rr = api.do(t, http.MethodDelete, "/todos/"+hexID, api.seed.UserOneToken, nil)
	assertStatus(t, rr, http.StatusNotFound)
	rr = api.do(t, http.MethodGet, "/todos/"+hexID, api.seed.UserOneToken, nil)
	assertStatus(t, rr, http.StatusNotFound)
}

func TestDeleteTodo_NotOwned(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodDelete, "/todos/"+api.seed.TodoTwo.ID.Hex(), api.seed.UserOneToken, nil)
	assertStatus(t, rr, http.StatusNotFound)
	require.True(t, api.todos.has(api.seed.TodoTwo.ID))
}

func TestPatchTodo_Completion(t *testing.T) {
	api := newTestAPI(t)
	path := "/todos/" + api.seed.TodoOne.ID.Hex()

	rr := api.do(t, http.MethodPatch, path, api.seed.UserOneToken, map[string]interface{}{
		"completed": true,
	})
	assertStatus(t, rr, http.StatusOK)
	todo := decodeBody(t, rr)["todo"].(map[string]interface{})
	require.Equal(t, true, todo["completed"])
	require.NotNil(t, todo["completedAt"])

	rr = api.do(t, http.MethodPatch, path, api.seed.UserOneToken, map[string]interface{}{
		"completed": false,
	})
	assertStatus(t, rr, http.StatusOK)
	todo = decodeBody(t, rr)["todo"].(map[string]interface{})
	require.Equal(t, false, todo["completed"])
	require.Nil(t, todo["completedAt"])
}

func TestPatchTodo_Text(t *testing.T) {
	api := newTestAPI(t)
	path := "/todos/" + api.seed.TodoOne.ID.Hex()

	rr := api.do(t, http.MethodPatch, path, api.seed.UserOneToken, map[string]interface{}{
		"text": "Updated text",
	})
	assertStatus(t, rr, http.StatusOK)
	todo := decodeBody(t, rr)["todo"].(map[string]interface{})
	require.Equal(t, "Updated text", todo["text"])

	rr = api.do(t, http.MethodPatch, path, api.seed.UserOneToken, map[string]interface{}{
		"text": "",
	})
	assertStatus(t, rr, http.StatusBadRequest)
}

func TestPatchTodo_NotOwned(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodPatch, "/todos/"+api.seed.TodoTwo.ID.Hex(), api.seed.UserOneToken, map[string]interface{}{
		"completed": false,
	})
	assertStatus(t, rr, http.StatusNotFound)
}
