package wire

import "bytes"

// Extractor 从上游流式 JSON 载荷中增量提取 "text":"..." 字符串值。
// 上游以任意字节边界切分数据块：一个值（甚至它的键或一个转义序列）
// 可能被拆在多个块里。Extractor 维护跨块缓冲区和已扫描偏移量，
// 只在闭合引号到齐后才产出值，且绝不重复产出。
type Extractor struct {
	buf []byte
	off int
}

var textKey = []byte(`"text"`)

// Feed 追加一个数据块，返回因此凑齐的完整文本片段（按出现顺序，已反转义）。
// 空字符串值会推进扫描位置但不会出现在返回值里。
func (x *Extractor) Feed(chunk []byte) []string {
	x.buf = append(x.buf, chunk...)
	out := x.drain()
	// 已扫描的前缀不会再被回看，丢掉以免长流下缓冲区无界增长。
	if x.off > 0 {
		x.buf = append(x.buf[:0], x.buf[x.off:]...)
		x.off = 0
	}
	return out
}

// Finish 在上游流结束后调用，返回缓冲区里剩余的完整片段。
// 残留的未闭合片段被丢弃：它们的闭合引号永远不会到达。
func (x *Extractor) Finish() []string {
	return x.drain()
}

func (x *Extractor) drain() []string {
	var out []string
	for {
		frag, ok := x.next()
		if !ok {
			return out
		}
		if frag != "" {
			out = append(out, frag)
		}
	}
}

// next 在未扫描的后缀中寻找一个完整的 "text":"..." 值。
// 找到则推进偏移量到闭合引号之后；数据不完整时不推进，
// 等下一个块到达后从同一位置重新扫描。
func (x *Extractor) next() (string, bool) {
	for {
		rel := bytes.Index(x.buf[x.off:], textKey)
		if rel < 0 {
			return "", false
		}
		start := x.off + rel

		i := start + len(textKey)
		for i < len(x.buf) && isSpace(x.buf[i]) {
			i++
		}
		if i >= len(x.buf) {
			return "", false
		}
		if x.buf[i] != ':' {
			// 不是键值对，跳过这次出现继续找。
			x.off = start + len(textKey)
			continue
		}
		i++
		for i < len(x.buf) && isSpace(x.buf[i]) {
			i++
		}
		if i >= len(x.buf) {
			return "", false
		}
		if x.buf[i] != '"' {
			x.off = start + len(textKey)
			continue
		}
		i++

		valStart := i
		for i < len(x.buf) {
			switch x.buf[i] {
			case '\\':
				if i+1 >= len(x.buf) {
					// 转义序列被块边界切开，等后半部分。
					return "", false
				}
				i += 2
			case '"':
				x.off = i + 1
				return unescape(x.buf[valStart:i]), true
			default:
				i++
			}
		}
		// 闭合引号还没到。
		return "", false
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// unescape 单次从左到右还原 \n \r \t \" \\ 五种转义，
// 其余转义序列原样保留。
func unescape(raw []byte) string {
	if bytes.IndexByte(raw, '\\') < 0 {
		return string(raw)
	}

	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			out = append(out, c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '"':
			out = append(out, '"')
		case '\\':
			out = append(out, '\\')
		default:
			out = append(out, '\\', raw[i])
		}
	}
	return string(out)
}
