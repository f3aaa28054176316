package tcerr

// 短信服务常见错误码
const (
	// CodeSignatureIncorrectOrUnapproved 短信签名错误或未审批
	CodeSignatureIncorrectOrUnapproved = "FailedOperation.SignatureIncorrectOrUnapproved"

	// CodeTemplateIncorrectOrUnapproved 模板错误或未审批
	CodeTemplateIncorrectOrUnapproved = "FailedOperation.TemplateIncorrectOrUnapproved"

	// CodeSmsSdkAppIDVerifyFail SdkAppId 校验失败
	CodeSmsSdkAppIDVerifyFail = "UnauthorizedOperation.SmsSdkAppIdVerifyFail"

	// CodeIncorrectPhoneNumber 手机号格式错误
	CodeIncorrectPhoneNumber = "InvalidParameterValue.IncorrectPhoneNumber"

	// CodePhoneNumberCountLimit 单次发送手机号数量超限
	CodePhoneNumberCountLimit = "LimitExceeded.PhoneNumberCountLimit"

	// CodeInsufficientBalance 套餐包余量不足
	CodeInsufficientBalance = "FailedOperation.InsufficientBalanceInSmsPackage"

	// CodeInternalTimeout 服务端内部超时
	CodeInternalTimeout = "InternalError.Timeout"

	// CodeRequestTimeException 请求时间与服务端偏差过大
	CodeRequestTimeException = "InternalError.RequestTimeException"
)
