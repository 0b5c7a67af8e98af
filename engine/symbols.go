package engine

// Native symbol names. The set and the registration table order are part of
// the ABI contract with the engine; see the binding check in abi.go.

const (
	symCreate          = "crest_create"
	symDestroy         = "crest_destroy"
	symRun             = "crest_run"
	symEnableDashboard = "crest_enable_dashboard"

	symRequestMethod = "crest_request_method"
	symRequestPath   = "crest_request_path"
	symRequestBody   = "crest_request_body"
	symRequestParam  = "crest_request_param"
	symRequestQuery  = "crest_request_query"
	symRequestHeader = "crest_request_header"

	symResponseStatus = "crest_response_status"
	symResponseHeader = "crest_response_header"
	symResponseSend   = "crest_response_send"
	symResponseJSON   = "crest_response_json"

	// Optional: present in newer engine builds only.
	symStop            = "crest_stop"
	symSetTitle        = "crest_set_title"
	symSetDescription  = "crest_set_description"
	symLogSetEnabled   = "crest_log_set_enabled"
	symLogSetTimestamp = "crest_log_set_timestamp"
)

// routeSymbols is indexed by crest.Method ordinal: GET=0, POST=1, PUT=2,
// DELETE=3, PATCH=4. The order is fixed by the native function table.
var routeSymbols = [...]string{
	"crest_get",
	"crest_post",
	"crest_put",
	"crest_delete",
	"crest_patch",
}

// requiredSymbols lists every symbol that must resolve for the bind to
// succeed. Missing entries aggregate into a BindingError.
var requiredSymbols = []string{
	symCreate,
	symDestroy,
	symRun,
	symEnableDashboard,
	routeSymbols[0],
	routeSymbols[1],
	routeSymbols[2],
	routeSymbols[3],
	routeSymbols[4],
	symRequestMethod,
	symRequestPath,
	symRequestBody,
	symRequestParam,
	symRequestQuery,
	symRequestHeader,
	symResponseStatus,
	symResponseHeader,
	symResponseSend,
	symResponseJSON,
}
