package signer

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// CanonicalRequest 构造规范请求串。六个字段按固定顺序以单个换行符连接，
// 字段为空时保留空行。method 原样使用（不自动转大写），
// uri 为空时取 "/"，不做 "."/".." 段归一化。
func CanonicalRequest(method, uri, query string, headers map[string]string, payload []byte) string {
	if uri == "" {
		uri = "/"
	}
	canonicalHeaders, signedHeaders := CanonicalHeaders(headers)

	var b strings.Builder
	b.WriteString(method)
	b.WriteByte('\n')
	b.WriteString(uri)
	b.WriteByte('\n')
	b.WriteString(CanonicalQueryString(query))
	b.WriteByte('\n')
	b.WriteString(canonicalHeaders)
	b.WriteByte('\n')
	b.WriteString(signedHeaders)
	b.WriteByte('\n')
	b.WriteString(HashPayload(payload))
	return b.String()
}

// CanonicalQueryString 规范化查询串：按 application/x-www-form-urlencoded
// 规则编码（空格转 '+'）、按编码后的键排序（同键按编码后的值），
// 重复参数全部保留。无值参数只输出键，不带 '='。空输入返回空串。
func CanonicalQueryString(query string) string {
	if query == "" {
		return ""
	}

	type pair struct{ key, value string }
	var params []pair
	for _, param := range strings.Split(query, "&") {
		if param == "" {
			continue
		}
		k, v, _ := strings.Cut(param, "=")
		params = append(params, pair{url.QueryEscape(k), url.QueryEscape(v)})
	}

	sort.SliceStable(params, func(i, j int) bool {
		if params[i].key != params[j].key {
			return params[i].key < params[j].key
		}
		return params[i].value < params[j].value
	})

	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.value == "" {
			parts = append(parts, p.key)
		} else {
			parts = append(parts, p.key+"="+p.value)
		}
	}
	return strings.Join(parts, "&")
}

// CanonicalHeaders 规范化请求头。返回两个串：
// 每头一行 "{小写名}:{去首尾空白的值}"，按小写名排序，末尾带换行；
// 以及分号连接、同序排列的小写头名列表（signed headers）。
// 值内部空白保留。大小写冲突的键不去重，逐个保留。
func CanonicalHeaders(headers map[string]string) (string, string) {
	lines := make([]string, 0, len(headers))
	names := make([]string, 0, len(headers))
	for k, v := range headers {
		name := strings.ToLower(k)
		lines = append(lines, name+":"+strings.TrimSpace(v))
		names = append(names, name)
	}
	// map 迭代序不稳定，必须显式排序
	sort.Strings(lines)
	sort.Strings(names)

	return strings.Join(lines, "\n") + "\n", strings.Join(names, ";")
}

// SignedHeaders 仅计算 signed headers 串，供调用方在最终签名前组装头部。
func SignedHeaders(headers map[string]string) string {
	names := make([]string, 0, len(headers))
	for k := range headers {
		names = append(names, strings.ToLower(k))
	}
	sort.Strings(names)
	return strings.Join(names, ";")
}

// HashPayload 请求体的 SHA256（hex 小写）。空体得到空串哈希，无特殊值。
func HashPayload(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
