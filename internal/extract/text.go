package extract

var (
	textViewRes = compileAll(
		`(?i)` + num + `\s*(?:views?|回再生|次再生)`,
		`再生回数[：:]\s*` + num,
		`(?i)views?\s*[：:]\s*` + num,
	)
	textLikeRes = compileAll(
		`(?i)` + num + `\s*(?:likes?|いいね)`,
		`♥\s*` + num,
		`いいね[：:]\s*` + num,
	)
	textCommentRes = compileAll(
		`(?i)` + num + `\s*(?:comments?|コメント)`,
		`コメント[：:]\s*` + num,
	)
	textShareRes = compileAll(
		`(?i)` + num + `\s*(?:shares?|シェア|共有)`,
	)
	textDateRes = compileAll(
		`(\d{4}-\d{2}-\d{2})`,
		`(\d{1,2}/\d{1,2}/\d{4})`,
		`(?i)(\d+\s*(?:hours?|days?|weeks?|時間|日|週間)\s*(?:ago|前))`,
	)
)

// visibleTextFields is the rendered-text fallback: the whole document is
// flattened to text and scanned for number-plus-unit-word statistics.
// Full-width digits are folded first so one digit class covers both
// locales.
func visibleTextFields(p *Payload) Fields {
	var f Fields
	text := foldWidth(p.Text())
	if text == "" {
		return f
	}

	f.ViewCount = firstCount(text, textViewRes)
	f.LikeCount = firstCount(text, textLikeRes)
	f.CommentCount = firstCount(text, textCommentRes)
	f.ShareCount = firstCount(text, textShareRes)

	for _, re := range textDateRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if t := uploadTimeOf(m[1], p.FetchedAt); t != nil {
			f.UploadTime = t
			break
		}
	}
	return f
}
