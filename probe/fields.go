package probe

import "strings"

// pidField extracts the numeric value following "pid=" up to the next comma,
// as it appears inside an ss users:(("name",pid=NNN,fd=K)) block.
func pidField(s string) (string, bool) {
	i := strings.Index(s, "pid=")
	if i < 0 {
		return "", false
	}
	rest := s[i+len("pid="):]
	j := strings.Index(rest, ",")
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}

// quotedField extracts the first double-quoted substring.
func quotedField(s string) (string, bool) {
	i := strings.Index(s, `"`)
	if i < 0 {
		return "", false
	}
	rest := s[i+1:]
	j := strings.Index(rest, `"`)
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}

// portOfAddress extracts the port from a local-address column such as
// 0.0.0.0:8080, [::]:8080 or *:8080.
func portOfAddress(addr string) (string, bool) {
	i := strings.LastIndex(addr, ":")
	if i < 0 {
		return "", false
	}
	return addr[i+1:], true
}
