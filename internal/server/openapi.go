package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// Parameter-only request structures. The reflector refuses operations whose
// path placeholders are not declared by a request structure, so every
// parameterized route needs one of these.
type getUserParams struct {
	Username string `path:"username"`
}

type createChallengeParams struct {
	CreatorUsername string `query:"creator_username" required:"true"`
}

type getChallengeParams struct {
	ChallengeID string `path:"challengeID"`
}

type acceptChallengeParams struct {
	ChallengeID string `path:"challengeID"`
	Username    string `query:"username" required:"true"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Globetrotter API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Globetrotter destination-guessing game.")

	// The route table is static; a registration error is a programming
	// mistake and fails at startup.
	add := func(oc openapi.OperationContext) {
		if err := r.AddOperation(oc); err != nil {
			panic(fmt.Sprintf("registering openapi operation: %v", err))
		}
	}

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	add(getHealthz)

	// GET /
	getRoot, _ := r.NewOperationContext(http.MethodGet, "/")
	getRoot.SetSummary("Welcome")
	getRoot.AddRespStructure(RootResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	add(getRoot)

	// GET /destinations/random
	getRandom, _ := r.NewOperationContext(http.MethodGet, "/destinations/random")
	getRandom.SetSummary("Random question")
	getRandom.SetDescription("Returns a random destination question: 1-2 clues and four shuffled city/country options.")
	getRandom.AddRespStructure(QuestionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getRandom.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	add(getRandom)

	// POST /destinations/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/destinations/answer")
	postAnswer.SetSummary("Check answer")
	postAnswer.SetDescription("Checks an answer against a destination. Accepts the city alone or \"city, country\", case-insensitive. When a username is given, the user's counters are updated.")
	postAnswer.AddReqStructure(AnswerRequest{})
	postAnswer.AddRespStructure(AnswerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	add(postAnswer)

	// POST /users
	postUsers, _ := r.NewOperationContext(http.MethodPost, "/users")
	postUsers.SetSummary("Create user")
	postUsers.SetDescription("Creates a user, optionally seeded with initial stats for anonymous-session promotion.")
	postUsers.AddReqStructure(CreateUserRequest{})
	postUsers.AddRespStructure(UserResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postUsers.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postUsers.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	add(postUsers)

	// GET /users/{username}
	getUser, _ := r.NewOperationContext(http.MethodGet, "/users/{username}")
	getUser.SetSummary("Get user")
	getUser.AddReqStructure(getUserParams{})
	getUser.AddRespStructure(UserResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getUser.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	add(getUser)

	// POST /challenges
	postChallenge, _ := r.NewOperationContext(http.MethodPost, "/challenges")
	postChallenge.SetSummary("Create challenge")
	postChallenge.SetDescription("Creates a challenge bound to the creator named by the creator_username query parameter.")
	postChallenge.AddReqStructure(createChallengeParams{})
	postChallenge.AddRespStructure(Challenge{}, openapi.WithHTTPStatus(http.StatusOK))
	postChallenge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postChallenge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	add(postChallenge)

	// GET /challenges/{challengeID}
	getChallenge, _ := r.NewOperationContext(http.MethodGet, "/challenges/{challengeID}")
	getChallenge.SetSummary("Get challenge")
	getChallenge.SetDescription("Returns the challenge with the creator's live stats.")
	getChallenge.AddReqStructure(getChallengeParams{})
	getChallenge.AddRespStructure(ChallengeView{}, openapi.WithHTTPStatus(http.StatusOK))
	getChallenge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	add(getChallenge)

	// POST /challenges/{challengeID}/accept
	postAccept, _ := r.NewOperationContext(http.MethodPost, "/challenges/{challengeID}/accept")
	postAccept.SetSummary("Accept challenge")
	postAccept.SetDescription("Marks the challenge accepted by the user named by the username query parameter.")
	postAccept.AddReqStructure(acceptChallengeParams{})
	postAccept.AddRespStructure(ChallengeView{}, openapi.WithHTTPStatus(http.StatusOK))
	postAccept.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postAccept.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	add(postAccept)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
