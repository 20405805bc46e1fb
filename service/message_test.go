package service

import (
	"context"
	"testing"

	"Lumen/dao"
	"Lumen/dao/cache"
	"Lumen/models"
)

func newMessageService(t *testing.T) *MessageService {
	t.Helper()
	db := setupTestDB(t)
	rds := setupTestRedis(t)
	return &MessageService{
		MessageDAO:    dao.NewMessageDAO(db),
		UserDAO:       dao.NewUsers(db),
		UnreadStorage: cache.NewUnreadStorage(rds),
		Redis:         rds,
		Oss:           fakeOss{},
		Product:       testProductConfig(),
	}
}

func msg(id int64, sender, receiver uint64, content string, read bool, at int64) models.DirectMessage {
	return models.DirectMessage{
		Id: id, SenderId: sender, ReceiverId: receiver,
		Content: content, IsRead: read, CreatedAt: at,
	}
}

func TestConversationsOf(t *testing.T) {
	me := uint64(1)
	// 输入按时间倒序，和 ListForUser 的返回一致
	msgs := []models.DirectMessage{
		msg(6, 2, me, "from A newest", false, 600),
		msg(5, me, 3, "to B", false, 500),
		msg(4, 2, me, "from A", false, 400),
		msg(3, 3, me, "from B", true, 300),
		msg(2, 2, me, "from A oldest", false, 200),
		msg(1, me, 2, "to A", false, 100),
	}

	got := ConversationsOf(msgs, me)

	if len(got) != 2 {
		t.Fatalf("want 2 conversations, got %d", len(got))
	}

	// 顺序跟最近消息一致：A(600) 在 B(500) 前
	if got[0].PeerId != 2 || got[1].PeerId != 3 {
		t.Fatalf("wrong order: %d, %d", got[0].PeerId, got[1].PeerId)
	}

	// 每个对端取最新一条
	if got[0].Last.Content != "from A newest" {
		t.Errorf("peer A last = %q", got[0].Last.Content)
	}
	if got[1].Last.Content != "to B" {
		t.Errorf("peer B last = %q", got[1].Last.Content)
	}

	// 未读只数发给我且未读的：A 三条未读，B 的那条已读
	if got[0].Unread != 3 {
		t.Errorf("peer A unread = %d, want 3", got[0].Unread)
	}
	if got[1].Unread != 0 {
		t.Errorf("peer B unread = %d, want 0", got[1].Unread)
	}
}

func TestConversationsOfEmpty(t *testing.T) {
	got := ConversationsOf(nil, 1)
	if len(got) != 0 {
		t.Fatalf("want empty, got %d", len(got))
	}
}

func TestConversationsOfSelfOnlySender(t *testing.T) {
	me := uint64(1)
	// 我发出去的未读不算在我的未读数里
	msgs := []models.DirectMessage{
		msg(2, me, 2, "hi again", false, 200),
		msg(1, me, 2, "hi", false, 100),
	}

	got := ConversationsOf(msgs, me)
	if len(got) != 1 || got[0].Unread != 0 {
		t.Fatalf("got %+v, want 1 conversation with 0 unread", got)
	}
}

func TestOpenChatMarksRead(t *testing.T) {
	s := newMessageService(t)
	ctx := context.Background()
	db := s.MessageDAO.Db

	seedUser(t, db, 1, "alice")
	seedUser(t, db, 2, "bob")

	for _, m := range []models.DirectMessage{
		msg(1, 2, 1, "one", false, 100),
		msg(2, 2, 1, "two", false, 200),
		msg(3, 1, 2, "reply", false, 300),
	} {
		if err := s.MessageDAO.Save(ctx, &m); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	s.UnreadStorage.Incr(ctx, 1, 2)
	s.UnreadStorage.Incr(ctx, 1, 2)

	history, err := s.OpenChat(ctx, 1, 2)
	if err != nil {
		t.Fatalf("OpenChat: %v", err)
	}

	// 历史正序完整
	if len(history.Messages) != 3 {
		t.Fatalf("want 3 messages, got %d", len(history.Messages))
	}
	if history.Messages[0].Content != "one" || history.Messages[2].Content != "reply" {
		t.Errorf("wrong order: %q ... %q", history.Messages[0].Content, history.Messages[2].Content)
	}
	if history.Peer.Username != "bob" {
		t.Errorf("peer = %q", history.Peer.Username)
	}

	// 打开即已读：DB 置位 + 缓存清零
	var unread int64
	db.Model(&models.DirectMessage{}).
		Where("receiver_id = ? AND is_read = ?", 1, false).
		Count(&unread)
	if unread != 0 {
		t.Errorf("db unread = %d, want 0", unread)
	}
	if got := s.UnreadStorage.Get(ctx, 1, 2); got != 0 {
		t.Errorf("cached unread = %d, want 0", got)
	}
}

func TestOpenChatUnknownPeer(t *testing.T) {
	s := newMessageService(t)
	seedUser(t, s.MessageDAO.Db, 1, "alice")

	if _, err := s.OpenChat(context.Background(), 1, 999); err == nil {
		t.Fatal("want error for unknown peer")
	}
}

func TestSendMessageValidation(t *testing.T) {
	s := newMessageService(t)
	ctx := context.Background()
	seedUser(t, s.MessageDAO.Db, 1, "alice")
	seedUser(t, s.MessageDAO.Db, 2, "bob")

	cases := []struct {
		name    string
		peer    uint64
		content string
	}{
		{"blank content", 2, "   "},
		{"no peer selected", 0, "hello"},
		{"send to self", 1, "hello"},
		{"unknown peer", 999, "hello"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.SendMessage(ctx, 1, tc.peer, tc.content); err == nil {
				t.Fatal("want error")
			}
		})
	}

	// 校验失败不落库
	var count int64
	s.MessageDAO.Db.Model(&models.DirectMessage{}).Count(&count)
	if count != 0 {
		t.Errorf("messages persisted = %d, want 0", count)
	}
}

func TestSendMessagePersists(t *testing.T) {
	s := newMessageService(t)
	ctx := context.Background()
	seedUser(t, s.MessageDAO.Db, 1, "alice")
	seedUser(t, s.MessageDAO.Db, 2, "bob")

	dto, err := s.SendMessage(ctx, 1, 2, "  hello  ")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if dto.Content != "hello" {
		t.Errorf("content = %q, want trimmed", dto.Content)
	}

	saved, err := s.MessageDAO.GetByID(ctx, dto.Id)
	if err != nil || saved == nil {
		t.Fatalf("message not persisted: %v", err)
	}
	if saved.IsRead {
		t.Error("new message should be unread")
	}

	// 接收方未读缓存 +1
	if got := s.UnreadStorage.Get(ctx, 2, 1); got != 1 {
		t.Errorf("receiver cached unread = %d, want 1", got)
	}
}

func TestLoadConversationsMergesCachedUnread(t *testing.T) {
	s := newMessageService(t)
	ctx := context.Background()
	db := s.MessageDAO.Db

	seedUser(t, db, 1, "alice")
	seedUser(t, db, 2, "bob")

	m := msg(1, 2, 1, "hi", false, 100)
	if err := s.MessageDAO.Save(ctx, &m); err != nil {
		t.Fatalf("save: %v", err)
	}
	// 缓存比 DB 聚合多，取较大者
	for i := 0; i < 5; i++ {
		s.UnreadStorage.Incr(ctx, 1, 2)
	}

	convs, err := s.LoadConversations(ctx, 1)
	if err != nil {
		t.Fatalf("LoadConversations: %v", err)
	}
	if len(convs) != 1 {
		t.Fatalf("want 1 conversation, got %d", len(convs))
	}
	if convs[0].Unread != 5 {
		t.Errorf("unread = %d, want 5", convs[0].Unread)
	}
	if convs[0].Peer.Username != "bob" {
		t.Errorf("peer = %q", convs[0].Peer.Username)
	}
}

func TestSearchUsers(t *testing.T) {
	s := newMessageService(t)
	s.Product.SearchLimit = 2
	ctx := context.Background()
	db := s.UserDAO.Db

	seedUser(t, db, 1, "anna")
	seedUser(t, db, 2, "Annabel")
	seedUser(t, db, 3, "joanna")
	seedUser(t, db, 4, "bob")

	// 少于 2 个字符不查询
	got, err := s.SearchUsers(ctx, " a ")
	if err != nil {
		t.Fatalf("SearchUsers: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("short query should return empty, got %d", len(got))
	}

	// 大小写不敏感，结果数受上限约束
	got, err = s.SearchUsers(ctx, "anna")
	if err != nil {
		t.Fatalf("SearchUsers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 results (capped), got %d", len(got))
	}
}
