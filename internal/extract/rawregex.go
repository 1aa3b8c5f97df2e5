package extract

import "strings"

// The lowest-confidence fallback: JSON-like "key": value fragments
// anywhere in the raw payload, including un-rendered script content.
// Key variants track the same historical drift as the state-blob keys.
var (
	rawViewRes = compileAll(
		`"playCount":\s*"?(\d+)"?`,
		`"viewCount":\s*"?(\d+)"?`,
		`"play_count":\s*"?(\d+)"?`,
		`"view_count":\s*"?(\d+)"?`,
	)
	rawLikeRes = compileAll(
		`"diggCount":\s*"?(\d+)"?`,
		`"digg_count":\s*"?(\d+)"?`,
		`"likeCount":\s*"?(\d+)"?`,
		`"like_count":\s*"?(\d+)"?`,
	)
	rawCommentRes = compileAll(
		`"commentCount":\s*"?(\d+)"?`,
		`"comment_count":\s*"?(\d+)"?`,
	)
	rawShareRes = compileAll(
		`"shareCount":\s*"?(\d+)"?`,
		`"share_count":\s*"?(\d+)"?`,
	)
	rawFollowerRes = compileAll(
		`"followerCount":\s*"?(\d+)"?`,
		`"follower_count":\s*"?(\d+)"?`,
	)
	rawDurationRes = compileAll(
		`"duration":\s*"?(\d+)"?`,
	)
	rawCreateRes = compileAll(
		`"createTime":\s*"?(\d+)"?`,
		`"create_time":\s*"?(\d+)"?`,
		`"uploadDate":\s*"([^"]+)"`,
		`"published_at":\s*"([^"]+)"`,
	)
	rawAuthorRes = compileAll(
		`"uniqueId":\s*"([^"]+)"`,
		`"unique_id":\s*"([^"]+)"`,
		`"username":\s*"([^"]+)"`,
		`"author":\s*"([^"]+)"`,
	)
	rawNicknameRes = compileAll(
		`"nickname":\s*"([^"]+)"`,
	)
)

// rawRegexFields scans the entire raw body for known key fragments. Runs
// last; it only ever fills fields every structured strategy missed.
func rawRegexFields(p *Payload) Fields {
	var f Fields
	body := p.Body

	f.ViewCount = firstCount(body, rawViewRes)
	f.LikeCount = firstCount(body, rawLikeRes)
	f.CommentCount = firstCount(body, rawCommentRes)
	f.ShareCount = firstCount(body, rawShareRes)
	f.AuthorFollowerCount = firstCount(body, rawFollowerRes)
	f.Duration = firstCount(body, rawDurationRes)

	for _, re := range rawCreateRes {
		m := re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		if t := uploadTimeOf(m[1], p.FetchedAt); t != nil {
			f.UploadTime = t
			break
		}
	}
	for _, re := range rawAuthorRes {
		if m := re.FindStringSubmatch(body); m != nil && strings.TrimSpace(m[1]) != "" {
			f.AuthorUsername = strings.TrimSpace(m[1])
			break
		}
	}
	for _, re := range rawNicknameRes {
		if m := re.FindStringSubmatch(body); m != nil && strings.TrimSpace(m[1]) != "" {
			f.AuthorDisplayName = strings.TrimSpace(m[1])
			break
		}
	}
	return f
}
