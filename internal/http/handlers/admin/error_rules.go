package admin

import (
	handlershared "github.com/craftshowcase/internal/http/handlers/shared"
	"github.com/craftshowcase/internal/http/response"
	"github.com/craftshowcase/internal/service"
)

var uploadErrorRules = []handlershared.MappedError{
	{Target: service.ErrNoFiles, Code: response.CodeBadRequest, Key: "error.upload_no_files"},
	{Target: service.ErrUploadRejected, Code: response.CodeBadRequest, Key: "error.upload_rejected"},
}

var listingErrorRules = []handlershared.MappedError{
	{Target: service.ErrListingInvalid, Code: response.CodeBadRequest, Key: "error.product_invalid"},
	{Target: service.ErrDuplicateListingID, Code: response.CodeBadRequest, Key: "error.product_duplicate_id"},
}

var learningErrorRules = []handlershared.MappedError{
	{Target: service.ErrLearningInputMissing, Code: response.CodeBadRequest, Key: "error.learning_fields_missing"},
}

var recipientErrorRules = []handlershared.MappedError{
	{Target: service.ErrRecipientInvalid, Code: response.CodeBadRequest, Key: "error.recipient_invalid"},
	{Target: service.ErrRecipientIndexInvalid, Code: response.CodeNotFound, Key: "error.recipient_not_found"},
}

var importErrorRules = []handlershared.MappedError{
	{Target: service.ErrExcelInvalid, Code: response.CodeBadRequest, Key: "error.excel_invalid"},
	{Target: service.ErrListingInvalid, Code: response.CodeBadRequest, Key: "error.product_invalid"},
	{Target: service.ErrDuplicateListingID, Code: response.CodeBadRequest, Key: "error.product_duplicate_id"},
}
