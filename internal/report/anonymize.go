package report

import "strings"

// AnonymizeEmail はメールアドレスのローカル部を伏せ字にする。
// ローカル部をドットで区切った各セグメントの先頭1文字だけを残し、
// 残りを'*'に置き換える。ドメイン部はそのまま。
// 例: "john.doe@example.com" -> "j***.d**@example.com"
// 既に伏せ字化された値に適用しても結果は変わらない。
func AnonymizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return maskLocal(email)
	}
	return maskLocal(email[:at]) + email[at:]
}

func maskLocal(local string) string {
	segments := strings.Split(local, ".")
	for i, seg := range segments {
		if len(seg) <= 1 {
			continue
		}
		segments[i] = seg[:1] + strings.Repeat("*", len(seg)-1)
	}
	return strings.Join(segments, ".")
}
