package xerrors

var (
	// ErrInvalidParams 请求参数无法解析或未通过校验。
	ErrInvalidParams = New(ErrInvalidArg, 400100, "invalid request parameters", "", nil)
	// ErrEmptySequence 输入序列为空。
	ErrEmptySequence = New(ErrInvalidArg, 400101, "empty sequence", "a tree needs at least one element", nil)
	// ErrIndexOutOfRange 更新下标越界。
	ErrIndexOutOfRange = New(ErrInvalidArg, 400102, "index out of range", "index must be in [0, size-1]", nil)
	// ErrInvalidRange 查询区间非法。
	ErrInvalidRange = New(ErrInvalidArg, 400103, "invalid range", "need 0 <= left <= right <= size-1", nil)
	// ErrNoMoreElements 迭代器已耗尽。
	ErrNoMoreElements = New(ErrInvalidArg, 400104, "no more elements", "iterator advanced past the last element", nil)
	// ErrUnknownAggregate 未知的聚合类型。
	ErrUnknownAggregate = New(ErrInvalidArg, 400105, "unknown aggregate", "supported aggregates: min, max, sum", nil)
	// ErrUnknownRepresentation 未知的树表示方式。
	ErrUnknownRepresentation = New(ErrInvalidArg, 400106, "unknown representation", "supported representations: array, node", nil)
	// ErrRateLimited 请求被限流。
	ErrRateLimited = New(ErrLimitExceeded, 429001, "too many requests", "access rate limit exceeded", nil)
)

// IndexOutOfRange 返回携带下标与长度上下文的越界错误。
func IndexOutOfRange(index, size int) *Error {
	return ErrIndexOutOfRange.Derive().
		WithDetail("index %d not in [0, %d]", index, size-1).
		WithContext("index", index).
		WithContext("size", size)
}

// InvalidRange 返回携带区间与长度上下文的区间错误。
func InvalidRange(left, right, size int) *Error {
	return ErrInvalidRange.Derive().
		WithDetail("range [%d, %d] not within [0, %d]", left, right, size-1).
		WithContext("left", left).
		WithContext("right", right).
		WithContext("size", size)
}

// InvalidParams 以 cause 为原因返回参数错误。
func InvalidParams(cause error) *Error {
	e := ErrInvalidParams.Derive()
	e.Cause = cause
	if cause != nil {
		e.Detail = cause.Error()
	}
	return e
}
