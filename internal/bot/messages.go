package bot

const (
	MsgHelp = `
		すしガチャボットです。

		/sushi - グループの参加者それぞれにランダムで一皿を選びます
		/menu - 取り込み済みのメニューを表示します
	`
	MsgUnexpectedErr = "予期しないエラーが発生しました。"
)

// =============================================================================
// Draw messages
// =============================================================================

const (
	MsgCatalogUnavailable = "メニューを読み込めませんでした。しばらくしてからもう一度お試しください。"
	MsgCatalogEmpty       = "メニューが空のため選べませんでした。"
	MsgRosterUnavailable  = "参加者一覧を取得できませんでした。"
	MsgNoParticipants     = "参加者が見つかりませんでした。"
	MsgDrawFailed         = "抽選に失敗しました: %s"
)

// =============================================================================
// Menu messages
// =============================================================================

const (
	MsgMenuSummary   = "メニュー: %d品"
	MsgMenuUpdatedAt = "最終更新: %s"
	MsgBuildFailed   = "メニューの更新に失敗しました: %s"
)
