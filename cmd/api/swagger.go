package api

import (
	"net/http"
	"time"

	_ "github.com/cybrarymin/cinema/docs"
	"github.com/cybrarymin/cinema/internal/data"
	"github.com/swaggo/swag"
)

// @title						Documentation of cinema catalog api
// @version					1.0
// @description				Movies, genres and actors of a cinema catalog
// @contact.name				Ryan
// @contact.url				https://github.com/cybrarymin
// @contact.email				aminmoghaddam1377@gmail.com
// @host						127.0.0.1:8080
// @basepath					/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
type SwaggerCreateMovieInput struct {
	Title       string  `json:"title"       example:"Funny Movie"`
	Description string  `json:"description" example:"A very funny movie"`
	Duration    int32   `json:"duration"    example:"90"`
	Genres      []int64 `json:"genres"      example:"1,2"`
	Actors      []int64 `json:"actors"      example:"1"`
}

type SwaggerUpdateMovieInput struct {
	Title       *string `json:"title,omitempty"       example:"Funnier Movie"`
	Description *string `json:"description,omitempty" example:"An even funnier movie"`
	Duration    *int32  `json:"duration,omitempty"    example:"95"`
	Genres      []int64 `json:"genres,omitempty"      example:"1"`
	Actors      []int64 `json:"actors,omitempty"      example:"1,2"`
}

type SwaggerImageResponse struct {
	ID    int64  `json:"id"    example:"1"`
	Image string `json:"image" example:"/media/uploads/movies/funny-movie-1b4e28ba-2fa1-11d2-883f-0016d3cca427.png"`
}

type SwaggerCreateGenreInput struct {
	Name string `json:"name" example:"Comedy"`
}

type SwaggerCreateActorInput struct {
	FirstName string `json:"first_name" example:"John"`
	LastName  string `json:"last_name"  example:"Doe"`
}

type SwaggerRegisterUserInput struct {
	Email    string `json:"email"    example:"john@example.com"`
	Password string `json:"password" example:"pa55word1234"`
}

type SwaggerUserResponse struct {
	Result data.User `json:"result"`
}

type SwaggerUserListResponse struct {
	Metadata data.PaginationMeta `json:"metadata"`
	Users    []data.User         `json:"users"`
}

type SwaggerTokenResponse struct {
	Result struct {
		Token  string    `json:"token"  example:"Y3QMGX3PJ3WLRL2YRTQGQ6KRHU"`
		Expiry time.Time `json:"expiry"`
	} `json:"result"`
}

type SwaggerHealthResponse struct {
	Health map[string]string `json:"health"`
}

type SwaggerDeleteResponse struct {
	Result string `json:"result" example:"movie deleted successfully"`
}

type SwaggerNotFound struct {
	Error string `json:"error" example:"the requested resource couldn't be found"`
}

type SwaggerServerErrorResponse struct {
	Error string `json:"error" example:"the server encountered an error to process the request"`
}

type SwaggerBadRequestResponse struct {
	Error string `json:"error" example:"bad request error"`
}

type SwaggerFailedValidationResponse struct {
	Error map[string]string `json:"error"`
}

type SwaggerRateLimitExceedResponse struct {
	Error string `json:"error" example:"request rate limit reached, please try again later"`
}

type SwaggerUnauthorizaed struct {
	Error string `json:"error" example:"authentication required"`
}

type SwaggerNotPermitted struct {
	Error string `json:"error" example:"your user account doesn't have the necessary permissions to access this resource"`
}

// swaggerDocHandler serves the registered OpenAPI document.
func (app *application) swaggerDocHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}
