package gemini

import (
	"github.com/fwojciec/quill"
	"google.golang.org/genai"
)

var (
	BuildConfig     = buildConfig
	MapFinishReason = mapFinishReason
)

func ConvertResponse(resp *genai.GenerateContentResponse) (quill.Response, error) {
	return convertResponse(resp)
}
