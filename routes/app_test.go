package routes_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"strings"
	"testing"

	"octofit/models"
	"octofit/routes"
	"octofit/serializers"
	"octofit/testsupport"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testBaseURL = "http://localhost:8000"

func TestMain(m *testing.M) {
	logrus.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testsupport.NewDB(t)
	return routes.NewApp(db, routes.AppOptions{BaseURL: testBaseURL}), db
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	_, err := models.SeedFixtures(context.Background(), db, logrus.StandardLogger())
	require.NoError(t, err)
}

func TestAPIRoot(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/", "/api/", "/api"} {
		status, body := do(t, app, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, status, path)

		links := decode[map[string]string](t, body)
		assert.Equal(t, map[string]string{
			"users":       testBaseURL + "/api/users/",
			"teams":       testBaseURL + "/api/teams/",
			"activities":  testBaseURL + "/api/activities/",
			"leaderboard": testBaseURL + "/api/leaderboard/",
			"workouts":    testBaseURL + "/api/workouts/",
		}, links, path)
	}
}

func TestAPIRootUsesConfiguredBaseURL(t *testing.T) {
	app := routes.NewApp(testsupport.NewDB(t), routes.AppOptions{BaseURL: "https://sandbox-8000.app.github.dev/"})

	status, body := do(t, app, http.MethodGet, "/api/", "")
	require.Equal(t, http.StatusOK, status)

	links := decode[map[string]string](t, body)
	require.Len(t, links, 5)
	for name, url := range links {
		assert.Equal(t, "https://sandbox-8000.app.github.dev/api/"+name+"/", url)
	}
}

func TestCreateThenRetrieveReturnsIdenticalRecord(t *testing.T) {
	app, _ := newTestApp(t)

	payloads := map[string]string{
		"users":       `{"name":"Clark Kent","email":"superman@dc.com","age":35}`,
		"teams":       `{"name":"Team DC","members":["batman@dc.com","superman@dc.com"]}`,
		"activities":  `{"user":"batman@dc.com","activity_type":"Gotham night patrol","duration":180.5,"date":"2024-01-10"}`,
		"leaderboard": `{"user":"thor@marvel.com","score":950}`,
		"workouts":    `{"name":"Batman Combat Conditioning","description":"Full-body","exercises":[{"name":"Batarang throws","sets":3,"reps":20}]}`,
	}

	for resource, payload := range payloads {
		t.Run(resource, func(t *testing.T) {
			status, body := do(t, app, http.MethodPost, "/api/"+resource+"/", payload)
			require.Equal(t, http.StatusCreated, status, string(body))

			created := decode[map[string]any](t, body)
			id, ok := created["id"].(string)
			require.True(t, ok, "id must be a string: %v", created["id"])
			require.NotEmpty(t, id)

			status, body = do(t, app, http.MethodGet, "/api/"+resource+"/"+id+"/", "")
			require.Equal(t, http.StatusOK, status)
			assert.Equal(t, created, decode[map[string]any](t, body))
		})
	}
}

func TestCreateUserWithDuplicateEmailConflicts(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := do(t, app, http.MethodPost, "/api/users/", `{"name":"Bruce Wayne","email":"batman@dc.com","age":40}`)
	require.Equal(t, http.StatusCreated, status)

	status, body := do(t, app, http.MethodPost, "/api/users/", `{"name":"Terry McGinnis","email":"batman@dc.com","age":16}`)
	assert.Equal(t, http.StatusConflict, status, string(body))

	status, body = do(t, app, http.MethodGet, "/api/users/", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]serializers.User](t, body), 1)
}

func TestUpdateUserEmailToExistingConflicts(t *testing.T) {
	app, _ := newTestApp(t)

	_, _ = do(t, app, http.MethodPost, "/api/users/", `{"name":"Bruce Wayne","email":"batman@dc.com","age":40}`)
	_, body := do(t, app, http.MethodPost, "/api/users/", `{"name":"Clark Kent","email":"superman@dc.com","age":35}`)
	clark := decode[serializers.User](t, body)

	status, _ := do(t, app, http.MethodPatch, "/api/users/"+clark.ID+"/", `{"email":"batman@dc.com"}`)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = do(t, app, http.MethodPatch, "/api/users/"+clark.ID+"/", `{"email":"superman@dc.com"}`)
	assert.Equal(t, http.StatusOK, status)
}

func TestCreateRejectsInvalidPayloads(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name     string
		resource string
		body     string
	}{
		{"missing fields", "users", `{"name":"Tony Stark"}`},
		{"wrong type", "users", `{"name":"Tony Stark","email":"ironman@marvel.com","age":"forty-five"}`},
		{"invalid email", "users", `{"name":"Tony Stark","email":"ironman","age":45}`},
		{"malformed json", "users", `{"name":`},
		{"blank name", "teams", `{"name":""}`},
		{"members not a list", "teams", `{"name":"Team Marvel","members":42}`},
		{"bad date", "activities", `{"user":"thor@marvel.com","activity_type":"Hammer","duration":10,"date":"yesterday"}`},
		{"missing score", "leaderboard", `{"user":"thor@marvel.com"}`},
		{"exercise not an object", "workouts", `{"name":"W","description":"D","exercises":["pushups"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, http.MethodPost, "/api/"+tt.resource+"/", tt.body)
			assert.Equal(t, http.StatusBadRequest, status, string(body))
			assert.Equal(t, false, decode[map[string]any](t, body)["success"])
		})
	}
}

func TestTeamMembersRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/teams/", `{"name":"Team X","members":["a@x.com","b@x.com"]}`)
	require.Equal(t, http.StatusCreated, status)
	team := decode[serializers.Team](t, body)

	status, body = do(t, app, http.MethodGet, "/api/teams/"+team.ID+"/", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, decode[serializers.Team](t, body).Members)
}

func TestPatchTeamAcceptsJSONEncodedMembers(t *testing.T) {
	app, _ := newTestApp(t)

	_, body := do(t, app, http.MethodPost, "/api/teams/", `{"name":"Team Marvel"}`)
	team := decode[serializers.Team](t, body)
	assert.Empty(t, team.Members)

	status, body := do(t, app, http.MethodPatch, "/api/teams/"+team.ID+"/", `{"members":"[\"thor@marvel.com\",\"ironman@marvel.com\"]"}`)
	require.Equal(t, http.StatusOK, status, string(body))

	updated := decode[serializers.Team](t, body)
	assert.Equal(t, "Team Marvel", updated.Name)
	assert.Equal(t, []string{"thor@marvel.com", "ironman@marvel.com"}, updated.Members)
}

func TestWorkoutWithoutExercisesReadsBackEmpty(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/workouts/", `{"name":"Rest Day","description":"Recover"}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	workout := decode[serializers.Workout](t, body)

	status, body = do(t, app, http.MethodGet, "/api/workouts/"+workout.ID+"/", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"exercises":[]`)
}

func TestMalformedStoredMembersServeEmptyList(t *testing.T) {
	app, db := newTestApp(t)

	team := models.Team{Name: "Broken", Members: `["half`}
	require.NoError(t, db.Create(&team).Error)

	status, body := do(t, app, http.MethodGet, fmt.Sprintf("/api/teams/%d/", team.ID), "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"members":[]`)

	status, _ = do(t, app, http.MethodGet, "/api/teams/", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestListOrdering(t *testing.T) {
	app, db := newTestApp(t)
	seed(t, db)

	_, body := do(t, app, http.MethodGet, "/api/users/", "")
	users := decode[[]serializers.User](t, body)
	require.Len(t, users, 10)
	assert.True(t, sort.SliceIsSorted(users, func(i, j int) bool { return users[i].Name < users[j].Name }))
	assert.Equal(t, "Barry Allen", users[0].Name)

	_, body = do(t, app, http.MethodGet, "/api/teams/", "")
	teams := decode[[]serializers.Team](t, body)
	require.Len(t, teams, 2)
	assert.Equal(t, "Team DC", teams[0].Name)
	assert.Len(t, teams[0].Members, 5)

	_, body = do(t, app, http.MethodGet, "/api/activities/", "")
	activities := decode[[]serializers.Activity](t, body)
	require.Len(t, activities, 10)
	for i := 1; i < len(activities); i++ {
		assert.GreaterOrEqual(t, activities[i-1].Date, activities[i].Date)
	}
	// Same-date rows keep insertion order.
	assert.Equal(t, "thor@marvel.com", activities[0].User)
	assert.Equal(t, "greenlantern@dc.com", activities[1].User)

	_, body = do(t, app, http.MethodGet, "/api/leaderboard/", "")
	entries := decode[[]serializers.Leaderboard](t, body)
	require.Len(t, entries, 10)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Score, entries[i].Score)
	}
	assert.Equal(t, 950, entries[0].Score)

	_, body = do(t, app, http.MethodGet, "/api/workouts/", "")
	workouts := decode[[]serializers.Workout](t, body)
	require.Len(t, workouts, 5)
	assert.Equal(t, "Batman Combat Conditioning", workouts[0].Name)
	assert.Len(t, workouts[0].Exercises, 3)
}

func TestSeedTwiceThroughAPI(t *testing.T) {
	app, db := newTestApp(t)
	seed(t, db)
	seed(t, db)

	want := map[string]int{"users": 10, "teams": 2, "activities": 10, "leaderboard": 10, "workouts": 5}
	for resource, n := range want {
		status, body := do(t, app, http.MethodGet, "/api/"+resource+"/", "")
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, decode[[]map[string]any](t, body), n, resource)
	}
}

func TestDeleteMissingRecord(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := do(t, app, http.MethodDelete, "/api/users/999/", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodGet, "/api/users/999/", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteRecord(t *testing.T) {
	app, _ := newTestApp(t)

	_, body := do(t, app, http.MethodPost, "/api/leaderboard/", `{"user":"flash@dc.com","score":790}`)
	entry := decode[serializers.Leaderboard](t, body)

	status, body := do(t, app, http.MethodDelete, "/api/leaderboard/"+entry.ID+"/", "")
	assert.Equal(t, http.StatusNoContent, status)
	assert.Empty(t, body)

	status, _ = do(t, app, http.MethodGet, "/api/leaderboard/"+entry.ID+"/", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeletedUserLeavesSoftReferences(t *testing.T) {
	app, db := newTestApp(t)
	seed(t, db)

	var thor models.User
	require.NoError(t, db.Where("email = ?", "thor@marvel.com").First(&thor).Error)

	status, _ := do(t, app, http.MethodDelete, fmt.Sprintf("/api/users/%d/", thor.ID), "")
	require.Equal(t, http.StatusNoContent, status)

	_, body := do(t, app, http.MethodGet, "/api/leaderboard/", "")
	entries := decode[[]serializers.Leaderboard](t, body)
	require.Len(t, entries, 10)
	assert.Equal(t, "thor@marvel.com", entries[0].User)
}

func TestNonNumericIDIsNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		status, _ := do(t, app, method, "/api/workouts/abc/", "")
		assert.Equal(t, http.StatusNotFound, status, method)
	}
	status, _ := do(t, app, http.MethodPatch, "/api/workouts/abc/", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdate(t *testing.T) {
	app, _ := newTestApp(t)

	_, body := do(t, app, http.MethodPost, "/api/users/", `{"name":"Peter Parker","email":"spiderman@marvel.com","age":22}`)
	peter := decode[serializers.User](t, body)

	t.Run("patch changes only supplied fields", func(t *testing.T) {
		status, body := do(t, app, http.MethodPatch, "/api/users/"+peter.ID+"/", `{"age":23}`)
		require.Equal(t, http.StatusOK, status, string(body))
		got := decode[serializers.User](t, body)
		assert.Equal(t, serializers.User{ID: peter.ID, Name: "Peter Parker", Email: "spiderman@marvel.com", Age: 23}, got)
	})

	t.Run("put requires every field", func(t *testing.T) {
		status, body := do(t, app, http.MethodPut, "/api/users/"+peter.ID+"/", `{"age":24}`)
		assert.Equal(t, http.StatusBadRequest, status, string(body))
	})

	t.Run("put replaces record", func(t *testing.T) {
		status, body := do(t, app, http.MethodPut, "/api/users/"+peter.ID+"/", `{"name":"Miles Morales","email":"miles@marvel.com","age":17}`)
		require.Equal(t, http.StatusOK, status, string(body))
		assert.Equal(t, serializers.User{ID: peter.ID, Name: "Miles Morales", Email: "miles@marvel.com", Age: 17}, decode[serializers.User](t, body))
	})

	t.Run("patch rejects invalid value", func(t *testing.T) {
		status, _ := do(t, app, http.MethodPatch, "/api/users/"+peter.ID+"/", `{"email":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("put keeps absent embedded lists", func(t *testing.T) {
		_, body := do(t, app, http.MethodPost, "/api/teams/", `{"name":"Team X","members":["a@x.com","b@x.com"]}`)
		team := decode[serializers.Team](t, body)

		status, body := do(t, app, http.MethodPut, "/api/teams/"+team.ID+"/", `{"name":"Team X2"}`)
		require.Equal(t, http.StatusOK, status, string(body))
		assert.Equal(t, serializers.Team{ID: team.ID, Name: "Team X2", Members: []string{"a@x.com", "b@x.com"}}, decode[serializers.Team](t, body))

		_, body = do(t, app, http.MethodPost, "/api/workouts/", `{"name":"Legs","description":"Squats","exercises":[{"name":"Squat","sets":3,"reps":10}]}`)
		workout := decode[serializers.Workout](t, body)

		status, body = do(t, app, http.MethodPut, "/api/workouts/"+workout.ID+"/", `{"name":"Legs II","description":"More squats"}`)
		require.Equal(t, http.StatusOK, status, string(body))
		got := decode[serializers.Workout](t, body)
		assert.Equal(t, "Legs II", got.Name)
		assert.Equal(t, workout.Exercises, got.Exercises)
	})

	t.Run("negative age accepted", func(t *testing.T) {
		status, body := do(t, app, http.MethodPost, "/api/users/", `{"name":"Benjamin Button","email":"button@x.com","age":-3}`)
		require.Equal(t, http.StatusCreated, status, string(body))
		assert.Equal(t, -3, decode[serializers.User](t, body).Age)
	})

	t.Run("missing record", func(t *testing.T) {
		status, _ := do(t, app, http.MethodPut, "/api/users/12345/", `{"name":"Nobody","email":"nobody@x.com","age":1}`)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestTrailingSlashIsOptional(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/api/users", "/api/users/"} {
		status, body := do(t, app, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, status, path)
		assert.JSONEq(t, `[]`, string(body))
	}
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := do(t, app, http.MethodGet, "/api/unknown/", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, decode[map[string]any](t, body)["success"])
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := do(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}
