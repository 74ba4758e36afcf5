// Package seed inserts demo content on first startup so a fresh install
// doesn't greet members with an empty feed.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/conghanh/luanho/internal/app/models"
	"github.com/conghanh/luanho/internal/app/repositories"
	"github.com/conghanh/luanho/internal/db"
	"github.com/conghanh/luanho/internal/pkg/avatar"
)

type seedPost struct {
	title    string
	category string
	content  string
}

var seedPosts = []seedPost{
	// Mẹo vặt
	{"Mẹo dậy sớm không mệt mỏi", "Mẹo vặt", "Đừng đặt chuông điện thoại ngay sát đầu giường. Hãy để nó ở góc phòng, buộc bạn phải bước xuống giường để tắt. Khi đã đứng dậy rồi, cơn buồn ngủ sẽ giảm đi 50%!"},
	{"Cách khử mùi giày cực nhanh", "Mẹo vặt", "Bỏ hai túi trà khô vào trong giày qua đêm. Trà sẽ hút ẩm và khử mùi cực kỳ hiệu quả mà không cần giặt."},
	{"Dọn dẹp bàn học trong 5 phút", "Mẹo vặt", "Áp dụng quy tắc 'Bề mặt trống'. Mọi thứ không dùng đến trong 10 phút tới phải được cất vào ngăn kéo. Bàn càng trống, não càng tập trung."},
	{"Uống nước đúng cách", "Mẹo vặt", "Đừng đợi khát mới uống. Hãy đặt một bình nước 1.5L ngay bàn học và dán ticker: 'Mỗi chương học - một ngụm nước'."},
	{"Mẹo tiết kiệm tiền ăn vặt", "Mẹo vặt", "Mỗi khi định mua trà sữa, hãy chuyển số tiền đó vào một tài khoản tiết kiệm riêng. Cuối tháng bạn sẽ sốc vì số tiền mình giữ lại được đấy."},

	// Học thông minh
	{"Kỹ thuật Pomodoro cho 'lính mới'", "Học thông minh", "25 phút học, 5 phút nghỉ. Nhưng nhớ là trong 5 phút đó, TUYỆT ĐỐI không chạm vào điện thoại. Hãy đứng dậy vươn vai hoặc uống nước."},
	{"Cách nhớ từ vựng tiếng Anh", "Học thông minh", "Đừng học từ đơn lẻ. Hãy học theo cụm từ (Collocations). Thay vì học từ 'decision', hãy học 'make a decision'."},
	{"Phương pháp Feynman để hiểu sâu", "Học thông minh", "Hãy thử giải thích bài toán khó cho một đứa trẻ lớp 5. Nếu bạn giải thích được đơn giản, nghĩa là bạn đã thực sự hiểu nó."},
	{"Nghe nhạc gì khi học?", "Học thông minh", "Nhạc không lời, Lo-fi hoặc nhạc Baroque là tốt nhất. Nhạc có lời sẽ khiến não bộ bận rộn xử lý ngôn ngữ và xao nhãng bài học."},
	{"Ghi chú theo kiểu Cornell", "Học thông minh", "Chia trang giấy làm 3 phần: Từ khóa, Nội dung chính và Tóm tắt. Đây là cách ôn bài cực nhanh trước khi thi."},

	// Kỹ năng & Tư duy
	{"Tư duy phát triển (Growth Mindset)", "Kỹ năng & Tư duy", "Thay vì nói 'Mình không làm được', hãy nói 'Mình CHƯA làm được'. Một từ thôi nhưng thay đổi cả thái độ của bạn với khó khăn."},
	{"Cách vượt qua nỗi sợ thuyết trình", "Kỹ năng & Tư duy", "Hãy nhớ rằng khán giả muốn bạn thành công. Họ ở đó để nghe thông tin, không phải để soi lỗi sai của bạn đâu. Tự tin lên!"},
	{"Kỹ năng từ chối khéo léo", "Kỹ năng & Tư duy", "Khi ai đó nhờ vả lúc bạn bận: 'Mình rất muốn giúp nhưng hiện tại mình phải hoàn thành việc này. Để tối mình nhắn lại nhé?'."},
	{"Quản lý thời gian kiểu Ma trận Eisenhower", "Kỹ năng & Tư duy", "Chia việc thành 4 nhóm: Quan trọng/Khẩn cấp, Quan trọng/Không khẩn cấp... Tập trung vào nhóm Quan trọng nhưng Không khẩn cấp để tránh stress."},
	{"Làm gì khi thất bại?", "Kỹ năng & Tư duy", "Viết ra 3 bài học bạn rút ra được. Thất bại là học phí cho sự khôn ngoan sau này. Đừng dằn vặt mình quá lâu."},

	// Truyền cảm hứng
	{"Mỗi ngày chỉ cần 1%", "Truyền cảm hứng", "Bạn không cần phải giỏi ngay lập tức. Chỉ cần hôm nay bạn tốt hơn hôm qua 1%, sau một năm bạn sẽ giỏi hơn gấp 37 lần."},
	{"Dành cho những ngày mệt mỏi", "Truyền cảm hứng", "Nghỉ ngơi không phải là bỏ cuộc. Một cỗ máy cũng cần bảo trì, và bạn cũng vậy. Hôm nay hãy đi ngủ sớm một chút nhé."},
	{"Bạn không thua kém ai cả", "Truyền cảm hứng", "Mỗi bông hoa đều có thời điểm nở rộ riêng. Đừng so sánh hành trình của mình với kết quả rực rỡ của người khác trên mạng xã hội."},
	{"Viết cho người đang chán nản", "Truyền cảm hứng", "Áp lực tạo nên kim cương. Nhưng kim cương cũng phải trải qua quá trình mài giũa đau đớn. Bạn đang trong quá trình đó thôi."},
	{"Sống tử tế từ những điều nhỏ", "Truyền cảm hứng", "Cười với cô lao công, nhặt một mảnh rác, nhường chỗ trên xe bus... Những đốm lửa nhỏ này sẽ làm ấm trái tim bạn trước tiên."},

	// Công nghệ
	{"Tránh nghiện mạng xã hội", "Công nghệ & Mẹo số", "Tắt toàn bộ thông báo (Notifications) ngoại trừ cuộc gọi. Bạn sẽ bất ngờ vì mình có thêm rất nhiều thời gian mỗi ngày."},
	{"Canva cho bài thuyết trình", "Công nghệ & Mẹo số", "Dùng tổ hợp phím 'Magic shortcuts' khi trình chiếu: Nhấn 'C' để có pháo hoa, nhấn 'D' để có tiếng trống. Bài trình bày sẽ thú vị hơn hẳn!"},
	{"Dùng điện thoại thông minh hơn", "Công nghệ & Mẹo số", "Cài đặt chế độ 'Màn hình xám' (Grayscale) vào buổi tối. Màu sắc nhợt nhạt sẽ làm não bớt hưng phấn và giúp bạn dễ rời xa điện thoại để đi ngủ."},
	{"AI giúp bạn học tốt hơn", "Công nghệ & Mẹo số", "Đừng nhờ AI làm hộ bài tập. Hãy nhờ nó 'Giải thích bước giải bài toán này cho mình'. Đó mới là cách dùng công nghệ thông minh."},
	{"Mẹo bảo vệ mắt khi dùng máy tính", "Công nghệ & Mẹo số", "Quy tắc 20-20-20: Cứ sau 20 phút nhìn màn hình, hãy nhìn ra xa 20 feet (6m) trong vòng 20 giây."},
}

var seedAuthors = []string{
	"Minh Anh", "Hoàng Nam", "Linh Chi", "Thu Hà", "Đức Long",
	"Phương Thảo", "Gia Bảo", "Khánh Vy", "Tuấn Kiệt", "Ngọc Mai",
}

// CreateDefaultData inserts the demo posts when the posts table is empty.
// Every demo post belongs to a synthetic ai- identity, so no points are
// involved.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	postRepo := repositories.NewPostRepository(database)

	existing, err := postRepo.List(ctx, repositories.PostFilter{Limit: 1})
	if err != nil {
		return fmt.Errorf("failed to check for existing posts: %w", err)
	}
	if len(existing) > 0 {
		lgr.Debug().Msg("Posts already present, skipping demo seed")
		return nil
	}

	lgr.Info().Int("count", len(seedPosts)).Msg("Seeding demo posts...")

	now := time.Now()
	for i, sp := range seedPosts {
		authorName := seedAuthors[i%len(seedAuthors)]
		post := &models.Post{
			ID:           uuid.New().String(),
			Title:        sp.title,
			Content:      sp.content,
			Category:     sp.category,
			Author:       authorName,
			AuthorAvatar: avatar.PlaceholderURL(authorName),
			AuthorUID:    fmt.Sprintf("%s%d", models.SyntheticUIDPrefix, now.Add(-time.Duration(i)*time.Minute).UnixMilli()),
			Likes:        10 + rand.Intn(60),
			LikedBy:      []string{},
		}
		if err := postRepo.Create(ctx, post); err != nil {
			return fmt.Errorf("failed to seed post %q: %w", sp.title, err)
		}
	}

	lgr.Info().Msg("Demo posts seeded")
	return nil
}
