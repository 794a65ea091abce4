package transport

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

// ec2ErrorResponse is the error document of the EC2 Query API:
//
//	<Response><Errors><Error><Code/><Message/></Error></Errors><RequestID/></Response>
type ec2ErrorResponse struct {
	XMLName xml.Name `xml:"Response"`
	Errors  []struct {
		Code    string `xml:"Code"`
		Message string `xml:"Message"`
	} `xml:"Errors>Error"`
	RequestID string `xml:"RequestID"`
}

// queryErrorResponse is the <ErrorResponse> form used by other Query APIs.
type queryErrorResponse struct {
	XMLName xml.Name `xml:"ErrorResponse"`
	Error   struct {
		Code    string `xml:"Code"`
		Message string `xml:"Message"`
	} `xml:"Error"`
	RequestID string `xml:"RequestId"`
}

// parseAWSError parses AWS error responses (EC2 XML, generic XML or JSON).
func parseAWSError(statusCode int, body []byte, requestID string) error {
	var ec2Err ec2ErrorResponse
	if err := xml.Unmarshal(body, &ec2Err); err == nil && len(ec2Err.Errors) > 0 && ec2Err.Errors[0].Code != "" {
		if requestID == "" {
			requestID = ec2Err.RequestID
		}
		first := ec2Err.Errors[0]
		return classifyAWSError(statusCode, first.Code, first.Message, requestID, body)
	}

	var queryErr queryErrorResponse
	if err := xml.Unmarshal(body, &queryErr); err == nil && queryErr.Error.Code != "" {
		if requestID == "" {
			requestID = queryErr.RequestID
		}
		return classifyAWSError(statusCode, queryErr.Error.Code, queryErr.Error.Message, requestID, body)
	}

	var jsonErr struct {
		Code    string `json:"__type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &jsonErr); err == nil && jsonErr.Code != "" {
		return classifyAWSError(statusCode, jsonErr.Code, jsonErr.Message, requestID, body)
	}

	errorType := ErrorTypeServer
	retryable := true
	if statusCode < 500 {
		errorType = ErrorTypeClient
		retryable = false
		switch statusCode {
		case 429:
			errorType = ErrorTypeRateLimit
			retryable = true
		case 401, 403:
			errorType = ErrorTypeAuth
		}
	}

	return &TransportError{
		Type:       errorType,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("AWS request failed with status %d", statusCode),
		Body:       string(body),
		RequestID:  requestID,
		Retryable:  retryable,
		Metadata: map[string]interface{}{
			MetadataResponseBody: string(body),
		},
	}
}

// ClassifyAWSError builds the TransportError for an AWS error code reported
// outside a Query API exchange, such as by an SDK client.
func ClassifyAWSError(statusCode int, code, message, requestID string) *TransportError {
	return classifyAWSError(statusCode, code, message, requestID, nil).(*TransportError)
}

// classifyAWSError categorizes AWS errors by code and status.
func classifyAWSError(statusCode int, code, message, requestID string, body []byte) error {
	message = sanitizeAWSError(message)

	var errorType ErrorType
	var retryable bool

	switch code {
	case "SignatureDoesNotMatch", "InvalidSignatureException", "InvalidAccessKeyId",
		"AuthFailure", "UnauthorizedOperation", "InvalidClientTokenId":
		errorType = ErrorTypeAuth
	case "RequestLimitExceeded", "Throttling", "ThrottlingException", "TooManyRequestsException":
		errorType = ErrorTypeRateLimit
		retryable = true
	case "RequestTimeout", "RequestTimeoutException", "RequestExpired":
		errorType = ErrorTypeTimeout
		retryable = true
	default:
		switch {
		case statusCode >= 500:
			errorType = ErrorTypeServer
			retryable = true
		case statusCode == 429:
			errorType = ErrorTypeRateLimit
			retryable = true
		case statusCode == 401 || statusCode == 403:
			errorType = ErrorTypeAuth
		default:
			errorType = ErrorTypeClient
		}
	}

	if code != "" {
		message = fmt.Sprintf("%s: %s", code, message)
	}
	return &TransportError{
		Type:       errorType,
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		Body:       string(body),
		RequestID:  requestID,
		Retryable:  retryable,
		Metadata: map[string]interface{}{
			MetadataAWSErrorCode: code,
		},
	}
}

// requestIDFromBody reads the RequestId element EC2 puts in every response.
func requestIDFromBody(body []byte) string {
	var doc struct {
		RequestID string `xml:"requestId"`
	}
	if err := xml.Unmarshal(body, &doc); err != nil {
		return ""
	}
	return doc.RequestID
}

var accessKeyPattern = regexp.MustCompile(`\b(AKIA|ASIA)[A-Z0-9]{16}\b`)

// sanitizeAWSError removes access key IDs from error messages.
// ARNs and resource IDs are acceptable for debugging.
func sanitizeAWSError(msg string) string {
	return accessKeyPattern.ReplaceAllStringFunc(msg, func(key string) string {
		return key[:4] + "****"
	})
}

// trimBody shortens a response body for log lines.
func trimBody(body string) string {
	const limit = 512
	body = strings.TrimSpace(body)
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "..."
}
