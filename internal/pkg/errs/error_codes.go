/*
Package errs provides custom error types and application-level error code constants.

These codes identify specific business or system errors both inside the
server and in responses to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body is not valid JSON.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after the JSON body.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate exceeded the limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Room and Shape Business Logic Errors
const (
	// ErrRoomNameInvalid indicates a room name that fails the slug rules.
	ErrRoomNameInvalid = 2101

	// ErrRoomTypeInvalid indicates a room type other than PUBLIC or PRIVATE.
	ErrRoomTypeInvalid = 2102

	// ErrRoomSlugExists indicates a room creation attempt with a taken slug.
	ErrRoomSlugExists = 2103

	// ErrRoomNotFound indicates that no room matches the given slug or id.
	ErrRoomNotFound = 2104

	// ErrCodeNotFound indicates that no room matches the given access code.
	ErrCodeNotFound = 2105

	// ErrShapeInvalid indicates a shape payload that fails codec validation.
	ErrShapeInvalid = 2201
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrInvalidEmail indicates a malformed signup email.
	ErrInvalidEmail = 3001

	// ErrInvalidPassword indicates a password outside the allowed length.
	ErrInvalidPassword = 3002

	// ErrUserAlreadyExists indicates a signup with an email already registered.
	ErrUserAlreadyExists = 3003

	// ErrInvalidCredentials indicates a failed signin.
	ErrInvalidCredentials = 3004

	// ErrUnauthorized indicates a missing or invalid bearer credential.
	ErrUnauthorized = 3101

	// ErrForbidden indicates an authenticated caller without rights to the resource.
	ErrForbidden = 3102
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000

	// ErrStorage indicates that the persistence backend refused or failed an operation.
	ErrStorage = 5001
)
