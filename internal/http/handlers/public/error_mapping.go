package public

import (
	handlershared "github.com/craftshowcase/internal/http/handlers/shared"
	"github.com/craftshowcase/internal/http/response"
	"github.com/craftshowcase/internal/service"
)

var quoteErrorRules = []handlershared.MappedError{
	{Target: service.ErrQuoteFieldsMissing, Code: response.CodeBadRequest, Key: "error.quote_fields_missing"},
	{Target: service.ErrQuoteEmailInvalid, Code: response.CodeBadRequest, Key: "error.quote_email_invalid"},
	{Target: service.ErrNoRecipients, Code: response.CodeInternal, Key: "error.quote_no_recipients"},
}
